package replay

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-trading/bars"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	barTimeLayout  = "2006-01-02 15:04"
	tickTimeLayout = "2006-01-02 15:04:05"
)

// LoadBars читает минутные (или иного периода) свечи из csv-файла
// формата Time,Open,High,Low,Close,Volume
func LoadBars(fileName string, symbol string, period time.Duration) ([]bars.DataPoint, error) {
	file, err := os.Open(fileName)
	if err != nil {
		l.Debug("файла со свечами нет", zap.String("fileName", fileName), zap.Error(err))
		return nil, err
	}
	defer file.Close()

	var result []bars.DataPoint
	r := csv.NewReader(bufio.NewReader(file))
	line := 0
	for {
		line++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.DPanic("ошибка парсинга файла", zap.String("fileName", fileName), zap.Error(err))
			return nil, err
		}
		if len(record) != 6 {
			l.DPanic("количество столбцов отличается от 6",
				zap.Int("line", line),
				zap.String("fileName", fileName),
			)
			continue
		}
		if line == 1 {
			//пропускаем строку с заголовком
			continue
		}

		t, err := time.Parse(barTimeLayout, record[0])
		if err != nil {
			l.DPanic("time.Parse error",
				zap.String("fileName", fileName),
				zap.Int("line", line),
				zap.Error(err),
			)
			return nil, err
		}
		ohlcv, err := parseDecimals(record[1:])
		if err != nil {
			l.DPanic("ошибка парсинга цены",
				zap.String("fileName", fileName),
				zap.Int("line", line),
				zap.Error(err),
			)
			return nil, err
		}

		result = append(result, &bars.TradeBar{
			Symbol: symbol,
			Time:   t,
			Period: period,
			Open:   ohlcv[0],
			High:   ohlcv[1],
			Low:    ohlcv[2],
			Close:  ohlcv[3],
			Volume: ohlcv[4],
		})
	}
	return result, nil
}

// LoadTicks читает сделки из csv-файла формата Time,Price,Quantity
func LoadTicks(fileName string, symbol string) ([]bars.DataPoint, error) {
	file, err := os.Open(fileName)
	if err != nil {
		l.Debug("файла с тиками нет", zap.String("fileName", fileName), zap.Error(err))
		return nil, err
	}
	defer file.Close()

	var result []bars.DataPoint
	r := csv.NewReader(bufio.NewReader(file))
	line := 0
	for {
		line++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.DPanic("ошибка парсинга файла", zap.String("fileName", fileName), zap.Error(err))
			return nil, err
		}
		if len(record) != 3 {
			l.DPanic("количество столбцов отличается от 3",
				zap.Int("line", line),
				zap.String("fileName", fileName),
			)
			continue
		}
		if line == 1 {
			continue
		}

		t, err := time.Parse(tickTimeLayout, record[0])
		if err != nil {
			l.DPanic("time.Parse error",
				zap.String("fileName", fileName),
				zap.Int("line", line),
				zap.Error(err),
			)
			return nil, err
		}
		pq, err := parseDecimals(record[1:])
		if err != nil {
			l.DPanic("ошибка парсинга цены",
				zap.String("fileName", fileName),
				zap.Int("line", line),
				zap.Error(err),
			)
			return nil, err
		}
		result = append(result, bars.NewTradeTick(symbol, t, pq[0], pq[1]))
	}
	return result, nil
}

// SaveBars пишет консолидированные бары в csv того же формата,
// что и LoadBars; любой тип бара приводится к OHLCV через свечу
func SaveBars(fileName string, emitted []bars.DataPoint) error {
	path := filepath.Dir(fileName)
	if err := os.MkdirAll(path, os.ModePerm); err != nil && !os.IsExist(err) {
		l.DPanic("не смог создать каталог",
			zap.String("path", path),
			zap.Error(err))
		return err
	}

	file, err := os.OpenFile(fileName, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		l.DPanic("не открыть файл",
			zap.String("fileName", fileName),
			zap.Error(err))
		return err
	}
	defer file.Close()

	datawriter := bufio.NewWriter(file)
	defer datawriter.Flush()

	datawriter.WriteString("Time,Open,High,Low,Close,Volume\n") //nolint:golint,errcheck
	for _, bar := range emitted {
		candle := bars.Candle(bar)
		_, err = datawriter.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s\n",
			candle.Period.Start.Format(barTimeLayout),
			candle.OpenPrice,
			candle.MaxPrice,
			candle.MinPrice,
			candle.ClosePrice,
			candle.Volume,
		))
		if err != nil {
			l.DPanic("не смог записать в файл",
				zap.String("fileName", fileName),
				zap.Error(err))
			return err
		}
	}
	return nil
}

func parseDecimals(fields []string) ([]decimal.Decimal, error) {
	result := make([]decimal.Decimal, len(fields))
	for i, f := range fields {
		d, err := decimal.NewFromString(f)
		if err != nil {
			return nil, err
		}
		result[i] = d
	}
	return result, nil
}
