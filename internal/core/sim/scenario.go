package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/steering/internal/core/observability/log"
	"github.com/zeusync/steering/internal/core/physics"
	"github.com/zeusync/steering/internal/core/steering"
)

// Scenario is a declarative world setup.
type Scenario struct {
	Name   string          `json:"name" yaml:"name"`
	Seed   uint64          `json:"seed" yaml:"seed"`
	Params steering.Params `json:"params" yaml:"params"`
	Agents []AgentSpec     `json:"agents" yaml:"agents"`
}

// Validate checks the scenario as a whole, including follow references.
func (s *Scenario) Validate() error {
	if len(s.Agents) == 0 {
		return fmt.Errorf("scenario %q: at least one agent is required", s.Name)
	}
	if err := s.Params.Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	names := make(map[string]struct{}, len(s.Agents))
	for i, a := range s.Agents {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("scenario %q: agent %d: %w", s.Name, i, err)
		}
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("scenario %q: %w: %s", s.Name, ErrDuplicateAgent, a.Name)
		}
		names[a.Name] = struct{}{}
	}
	for _, a := range s.Agents {
		if a.Follow == "" {
			continue
		}
		if _, ok := names[a.Follow]; !ok {
			return fmt.Errorf("scenario %q: %w: %s follows %s", s.Name, ErrAgentNotFound, a.Name, a.Follow)
		}
	}
	return nil
}

func newScenario() Scenario {
	return Scenario{Seed: 1, Params: steering.DefaultParams()}
}

// LoadScenarioYAML decodes and validates a YAML scenario. Omitted parameters
// keep their defaults.
func LoadScenarioYAML(r io.Reader) (*Scenario, error) {
	s := newScenario()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScenarioJSON decodes and validates a JSON scenario.
func LoadScenarioJSON(r io.Reader) (*Scenario, error) {
	s := newScenario()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScenarioFile picks the decoder from the file extension.
func LoadScenarioFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadScenarioJSON(f)
	case ".yaml", ".yml":
		return LoadScenarioYAML(f)
	default:
		return nil, fmt.Errorf("scenario %s: unsupported extension", path)
	}
}

// Load adds every agent of the scenario. Agents may follow agents declared
// later in the list.
func (w *World) Load(s *Scenario) error {
	if err := s.Validate(); err != nil {
		return err
	}

	for _, spec := range s.Agents {
		spec.Follow = ""
		if _, err := w.AddAgent(spec); err != nil {
			return err
		}
	}

	for _, spec := range s.Agents {
		if spec.Follow == "" {
			continue
		}
		id, _ := w.Lookup(spec.Name)
		target, _ := w.Lookup(spec.Follow)
		if err := w.FollowAgent(id, target); err != nil {
			return err
		}
	}
	return nil
}

// NewWorldFromScenario builds a world configured and populated by s.
func NewWorldFromScenario(s *Scenario, logger log.Log) (*World, error) {
	w, err := NewWorld(Config{Seed: s.Seed, Params: s.Params}, logger)
	if err != nil {
		return nil, err
	}
	if err = w.Load(s); err != nil {
		return nil, err
	}
	return w, nil
}

func point(x, y float64) *physics.Vec2 {
	p := physics.V(x, y)
	return &p
}

// DemoScenario exercises every behavior: a wandering runner that the other
// agents seek, flee, face, pursue and evade.
func DemoScenario() *Scenario {
	s := newScenario()
	s.Name = "demo"
	s.Agents = []AgentSpec{
		{Name: "runner", Behavior: steering.KindWander, MaxLinearSpeed: 200, MaxAngularSpeed: 6},
		{Name: "seeker", Behavior: steering.KindSeek, Position: physics.V(-400, -300), Target: point(400, 300), MaxLinearSpeed: 300, MaxAngularSpeed: 6},
		{Name: "arriver", Behavior: steering.KindArrive, Position: physics.V(600, 0), Target: point(-300, 200), MaxLinearSpeed: 600, MaxAngularSpeed: 6},
		{Name: "fleer", Behavior: steering.KindFlee, Position: physics.V(50, 50), Follow: "runner", MaxLinearSpeed: 150, MaxAngularSpeed: 6},
		{Name: "watcher", Behavior: steering.KindFace, Position: physics.V(0, 500), Follow: "runner", MaxLinearSpeed: 100, MaxAngularSpeed: 3},
		{Name: "chaser", Behavior: steering.KindPursuit, Position: physics.V(-500, 200), Follow: "runner", MaxLinearSpeed: 250, MaxAngularSpeed: 6},
		{Name: "dodger", Behavior: steering.KindEvade, Position: physics.V(-300, 100), Follow: "chaser", MaxLinearSpeed: 280, MaxAngularSpeed: 6},
	}
	return &s
}
