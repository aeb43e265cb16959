package renko

// Явные функции выбора цены и объёма из сэмпла -
// кирпичные консолидаторы не привязаны к конкретной форме входа

import (
	"github.com/go-trading/bars"
	"github.com/shopspring/decimal"
)

type Selector func(d bars.DataPoint) decimal.Decimal

// ValueSelector берёт репрезентативную цену сэмпла
func ValueSelector(d bars.DataPoint) decimal.Decimal {
	return d.GetValue()
}

// VolumeSelector берёт объём сделки из тика или свечи; у котировок объёма нет
func VolumeSelector(d bars.DataPoint) decimal.Decimal {
	switch v := d.(type) {
	case *bars.Tick:
		if v.Kind == bars.TickTrade {
			return v.Quantity
		}
	case *bars.TradeBar:
		return v.Volume
	}
	return decimal.Zero
}

// ZeroVolumeSelector для потоков без объёма
func ZeroVolumeSelector(d bars.DataPoint) decimal.Decimal {
	return decimal.Zero
}

// выравнивание цены открытия первого кирпича на сетку, кратную размеру
// кирпича: благодаря этому консолидаторы, запущенные с разных смещений
// одного потока, сходятся к одинаковым границам кирпичей
func floorToBrick(price decimal.Decimal, brickSize decimal.Decimal) decimal.Decimal {
	return price.Div(brickSize).Floor().Mul(brickSize)
}
