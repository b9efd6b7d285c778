package mips

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	REGISTER_COUNT = 32  // Number of general purpose registers.
	REGISTER_SIGIL = "$" // Optional register prefix in source text.
)

// registerNames are the canonical names of the 32 registers, by index.
var registerNames = [REGISTER_COUNT]string{
	"zero", "at",
	"v0", "v1",
	"a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9",
	"k0", "k1",
	"gp", "sp", "fp", "ra",
}

// registerMap maps every symbolic register name to its index.
var registerMap = func() map[string]int {
	regs := make(map[string]int, REGISTER_COUNT)
	for n, name := range registerNames {
		regs[name] = n
	}
	return regs
}()

// ResolveRegister returns the register index named by token. The token may
// carry a `$` sigil and is either a decimal index or a symbolic name. An
// empty token is register 0.
func ResolveRegister(token string) (index int, err error) {
	if len(token) == 0 {
		return
	}

	name := strings.TrimPrefix(token, REGISTER_SIGIL)
	if len(name) == 0 {
		err = ErrRegister(token)
		return
	}

	if name[0] >= '0' && name[0] <= '9' {
		var n uint64
		n, err = strconv.ParseUint(name, 10, 8)
		if err != nil || n >= REGISTER_COUNT {
			err = ErrRegister(token)
			return
		}
		index = int(n)
		return
	}

	index, ok := registerMap[name]
	if !ok {
		err = ErrRegister(token)
		return
	}

	return
}

// RegisterName returns the canonical `$name` of a register index.
func RegisterName(index int) string {
	if index < 0 || index >= REGISTER_COUNT {
		return fmt.Sprintf("%v%d", REGISTER_SIGIL, index)
	}
	return REGISTER_SIGIL + registerNames[index]
}
