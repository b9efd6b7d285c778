// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config loads assembler settings from a Starlark script.
//
// The script sets any of these globals:
//
//	start = 0x00400000            # starting address, int or string
//	strict = True                 # reject repeated labels
//	verbose = False               # log every assembled line
//	labels = {"putc": 0x80000180} # labels predefined for every program
//
// DEFAULT_START is predeclared with the conventional text segment address.
package config

import (
	"fmt"
	"math"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mipsasm/mips"
)

// Config is the result of running a configuration script.
type Config struct {
	Start   string            // Starting address text, empty if unset.
	Strict  bool              // Reject repeated labels.
	Verbose bool              // Log assembler actions.
	Labels  map[string]uint32 // Predefined labels.
}

// predeclared names visible to every script.
var predeclared = starlark.StringDict{
	"DEFAULT_START": starlark.MakeInt64(0x00400000),
}

// Load runs the script in filename. If src is nil the file is read,
// otherwise src (a string or []byte) is used as the script text.
func Load(filename string, src any) (cfg *Config, err error) {
	if src == nil {
		var data []byte
		data, err = os.ReadFile(filename)
		if err != nil {
			return
		}
		src = data
	}

	thread := &starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)
	if err != nil {
		return
	}

	cfg = &Config{}
	err = cfg.apply(globals)
	if err != nil {
		cfg = nil
		return
	}

	return
}

// apply copies the recognized globals into the configuration.
func (cfg *Config) apply(globals starlark.StringDict) (err error) {
	if value, ok := globals["start"]; ok {
		switch v := value.(type) {
		case starlark.String:
			cfg.Start = string(v)
		case starlark.Int:
			var address uint32
			address, err = toAddress("start", v)
			if err != nil {
				return
			}
			cfg.Start = mips.Hex(address)
		default:
			err = &ErrConfig{Name: "start", Err: ErrConfigType}
			return
		}
	}

	if value, ok := globals["strict"]; ok {
		cfg.Strict, err = toBool("strict", value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["verbose"]; ok {
		cfg.Verbose, err = toBool("verbose", value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["labels"]; ok {
		dict, is_dict := value.(*starlark.Dict)
		if !is_dict {
			err = &ErrConfig{Name: "labels", Err: ErrConfigType}
			return
		}
		cfg.Labels = make(map[string]uint32, dict.Len())
		for _, item := range dict.Items() {
			key, is_str := item[0].(starlark.String)
			if !is_str {
				err = &ErrConfig{Name: "labels", Err: ErrConfigType}
				return
			}
			name := fmt.Sprintf("labels[%v]", key)
			num, is_int := item[1].(starlark.Int)
			if !is_int {
				err = &ErrConfig{Name: name, Err: ErrConfigType}
				return
			}
			cfg.Labels[string(key)], err = toAddress(name, num)
			if err != nil {
				return
			}
		}
	}

	return
}

func toBool(name string, value starlark.Value) (b bool, err error) {
	v, ok := value.(starlark.Bool)
	if !ok {
		err = &ErrConfig{Name: name, Err: ErrConfigType}
		return
	}
	b = bool(v)
	return
}

func toAddress(name string, value starlark.Int) (address uint32, err error) {
	v64, ok := value.Int64()
	if !ok || v64 < 0 || v64 > math.MaxUint32 {
		err = &ErrConfig{Name: name, Err: ErrConfigRange}
		return
	}
	address = uint32(v64)
	return
}
