package consolidator

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
)

var _ bars.Consolidator = (*Identity)(nil)

// Identity пропускает сэмплы насквозь: каждый Update немедленно
// эмитирует входной сэмпл без изменений
type Identity struct {
	bars.ConsolidatedEvent
	symbol  string
	working bars.DataPoint
}

func NewIdentity() *Identity {
	return &Identity{}
}

func (c *Identity) Update(d bars.DataPoint) error {
	if err := bars.CheckSymbol(&c.symbol, d); err != nil {
		return err
	}
	c.working = d
	c.Emit(c, d)
	return nil
}

// времени нечего продвигать: бар закрывается на каждом сэмпле
func (c *Identity) Scan(now time.Time) {}

func (c *Identity) Reset() {
	c.symbol = ""
	c.working = nil
	c.ResetEvent()
}

func (c *Identity) WorkingData() bars.DataPoint {
	return c.working
}

func (c *Identity) InputType() reflect.Type {
	return reflect.TypeOf((*bars.DataPoint)(nil)).Elem()
}

func (c *Identity) OutputType() reflect.Type {
	return reflect.TypeOf((*bars.DataPoint)(nil)).Elem()
}
