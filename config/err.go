package config

import (
	"errors"

	"github.com/ezrec/mipsasm/translate"
)

var f = translate.From

var (
	ErrConfigType  = errors.New(f("config value has the wrong type"))
	ErrConfigRange = errors.New(f("config value out of range"))
)

// ErrConfig locates an invalid global in a configuration script.
type ErrConfig struct {
	Name string
	Err  error
}

func (err ErrConfig) Error() string {
	return f("config %v: %v", err.Name, err.Err)
}

func (err ErrConfig) Unwrap() error {
	return err.Err
}
