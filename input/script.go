package input

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptSource runs a tengo scenario once per tick. The script sees the tick
// number as __tick and sets the globals move_x, jump and die. A global it
// never declares reads as zero.
type ScriptSource struct {
	name     string
	compiled *tengo.Compiled
}

func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(src)
	_ = script.Add("__tick", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile %s: %w", name, err)
	}
	return &ScriptSource{name: name, compiled: compiled}, nil
}

// Next runs the script for tick. Runtime failures, including panics raised
// inside the VM, come back as errors.
func (s *ScriptSource) Next(tick uint64) (f Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = Frame{}, fmt.Errorf("input: %s: tick %d: %v", s.name, tick, r)
		}
	}()

	if err := s.compiled.Set("__tick", int64(tick)); err != nil {
		return Frame{}, fmt.Errorf("input: %s: set tick: %w", s.name, err)
	}
	if err := s.compiled.Run(); err != nil {
		return Frame{}, fmt.Errorf("input: %s: tick %d: %w", s.name, tick, err)
	}

	if s.compiled.IsDefined("move_x") {
		f.MoveX = s.compiled.Get("move_x").Float()
	}
	if s.compiled.IsDefined("jump") {
		f.Jump = s.compiled.Get("jump").Bool()
	}
	if s.compiled.IsDefined("die") {
		f.Die = s.compiled.Get("die").Bool()
	}
	return f, nil
}
