package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-realms/internal/realm"
)

type RealmConfig struct {
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
	Seed uint64 `json:"seed"`
}

func (c *RealmConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Rows < 0 {
		el.Add(fmt.Errorf("realm rows must not be negative"))
	}
	if c.Cols < 0 {
		el.Add(fmt.Errorf("realm cols must not be negative"))
	}
	if (c.Rows == 0) != (c.Cols == 0) {
		el.Add(fmt.Errorf("realm rows and cols must be set together"))
	}

	return el.Err()
}

func (c *RealmConfig) realmOptions() []realm.StrategyOpt {
	var opts []realm.StrategyOpt
	if c.Rows > 0 && c.Cols > 0 {
		opts = append(opts, realm.WithGridSize(c.Rows, c.Cols))
	}
	if c.Seed != 0 {
		opts = append(opts, realm.WithSeed(c.Seed))
	}
	return opts
}
