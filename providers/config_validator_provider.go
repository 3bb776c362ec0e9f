package providers

import (
	"errors"
	"fmt"

	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}

	if c.conf.Cache.Enabled && c.conf.Cache.Size <= 0 {
		return errors.New("invalid config: cache.size must be positive when the cache is enabled")
	}

	return nil
}
