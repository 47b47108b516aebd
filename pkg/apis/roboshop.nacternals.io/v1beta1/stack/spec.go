package stack

import (
	"github.com/jellydator/validation"
)

// Spec defines the main stack spec: the hosts to provision and the
// services, artifacts and alerting settings shared by all of them.
type Spec struct {
	Hosts     Hosts      `yaml:"hosts"`
	Services  Services   `yaml:"services,omitempty"`
	Artifacts *Artifacts `yaml:"artifacts,omitempty"`
	Alerts    *Alerts    `yaml:"alerts,omitempty"`

	stack *Stack
}

// Stack is a meta field to be able to access the parent from the spec
type Stack struct {
	Name string
}

// SetStackMeta allows injecting parent metadata into the spec
func (s *Spec) SetStackMeta(name string) {
	s.stack = &Stack{Name: name}
}

// StackName returns the name of the stack, "roboshop" when unset
func (s *Spec) StackName() string {
	if s.stack == nil || s.stack.Name == "" {
		return "roboshop"
	}
	return s.stack.Name
}

// UnmarshalYAML sets defaults when unmarshaling
func (s *Spec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	s.Artifacts = DefaultArtifacts()
	s.Services = DefaultServices()

	type spec Spec
	ys := (*spec)(s)

	if err := unmarshal(ys); err != nil {
		return err
	}

	if s.Artifacts == nil {
		s.Artifacts = DefaultArtifacts()
	}

	return nil
}

// Validate performs a sanity check on the spec
func (s *Spec) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Hosts, validation.Required),
		validation.Field(&s.Services),
		validation.Field(&s.Artifacts),
		validation.Field(&s.Alerts),
	)
}

// ServiceForRole returns the service definition for a role name
func (s *Spec) ServiceForRole(role string) *Service {
	return s.Services.Find(role)
}

// RoleAddress returns the connectable address of the first host carrying
// the given role, or an empty string when the role is not placed anywhere.
func (s *Spec) RoleAddress(role string) string {
	h := s.Hosts.WithRole(role).First()
	if h == nil {
		return ""
	}
	return h.Address()
}

// Endpoints builds the service discovery environment shared by all unit
// templates: one <ROLE>_HOST entry per placed service.
func (s *Spec) Endpoints() map[string]string {
	env := make(map[string]string)
	for _, svc := range s.Services {
		if addr := s.RoleAddress(svc.Name); addr != "" {
			env[svc.EndpointVar()] = addr
		}
	}
	return env
}
