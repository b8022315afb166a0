package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/blockworld/world"
	"go.uber.org/zap"
)

// Loader returns the source of a named script.
type Loader func(name string) ([]byte, error)

const dispatchScript = `
if __phase == "update" {
	update(__engine, __state)
}
`

type program struct {
	name     string
	compiled *tengo.Compiled
}

type instance struct {
	id       world.ID
	program  *program
	compiled *tengo.Compiled
	state    *tengo.Map
	failed   bool
}

// Runtime runs one behaviour script instance per bound entity. Scripts define
// update(engine, state); state is a map private to the instance that survives
// reloads.
type Runtime struct {
	load      Loader
	log       *zap.Logger
	programs  map[string]*program
	instances []*instance
}

func New(load Loader, log *zap.Logger) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runtime{
		load:     load,
		log:      log,
		programs: make(map[string]*program),
	}
}

// Bind attaches the named script to an entity. Bound entities update in bind
// order.
func (r *Runtime) Bind(id world.ID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("script: bind %d: empty script name", id)
	}
	p, err := r.program(name)
	if err != nil {
		return err
	}
	r.instances = append(r.instances, &instance{
		id:       id,
		program:  p,
		compiled: p.compiled.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	})
	return nil
}

func (r *Runtime) Len() int {
	return len(r.instances)
}

// Reset drops every binding, e.g. before a level is rebuilt.
func (r *Runtime) Reset() {
	r.instances = nil
}

// Reload recompiles a script and swaps it into every instance using it. On
// error the previous version keeps running.
func (r *Runtime) Reload(name string) error {
	old, ok := r.programs[name]
	if !ok {
		return nil
	}
	p, err := r.compile(name)
	if err != nil {
		return err
	}
	r.programs[name] = p
	for _, in := range r.instances {
		if in.program != old {
			continue
		}
		in.program = p
		in.compiled = p.compiled.Clone()
		in.failed = false
	}
	r.log.Info("script reloaded", zap.String("script", name))
	return nil
}

// Update runs update() for every bound entity that still exists. A script
// that fails is logged once and then skipped until it is reloaded.
func (r *Runtime) Update(w *world.World) {
	for _, in := range r.instances {
		if in.failed {
			continue
		}
		e := w.Entity(in.id)
		if e == nil {
			continue
		}
		if err := in.run("update", r.engine(w, e, in.program.name)); err != nil {
			in.failed = true
			r.log.Error("script update failed",
				zap.String("script", in.program.name),
				zap.String("entity", e.Name),
				zap.Int("id", int(in.id)),
				zap.Error(err),
			)
		}
	}
}

func (r *Runtime) program(name string) (*program, error) {
	if p, ok := r.programs[name]; ok {
		return p, nil
	}
	p, err := r.compile(name)
	if err != nil {
		return nil, err
	}
	r.programs[name] = p
	return p, nil
}

func (r *Runtime) compile(name string) (*program, error) {
	if r.load == nil {
		return nil, fmt.Errorf("script: %s: no loader", name)
	}
	src, err := r.load(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}

	s := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	// Run the top level once so runtime errors outside update surface here.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}
	return &program{name: name, compiled: compiled}, nil
}

func (in *instance) run(phase string, engine *tengo.ImmutableMap) error {
	if err := in.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := in.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := in.compiled.Set("__state", in.state); err != nil {
		return err
	}
	return in.compiled.Run()
}
