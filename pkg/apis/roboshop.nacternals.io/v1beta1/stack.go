package v1beta1

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/jellydator/validation"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// APIVersion is the current api version
const APIVersion = "roboshop.nacternals.io/v1beta1"

// StackMetadata defines stack metadata
type StackMetadata struct {
	Name string `yaml:"name" default:"roboshop"`
}

// Stack describes a roboshop.yaml configuration
type Stack struct {
	APIVersion string         `yaml:"apiVersion"`
	Kind       string         `yaml:"kind"`
	Metadata   *StackMetadata `yaml:"metadata"`
	Spec       *stack.Spec    `yaml:"spec"`
}

// UnmarshalYAML sets in some sane defaults when unmarshaling the data from yaml
func (s *Stack) UnmarshalYAML(unmarshal func(interface{}) error) error {
	s.Metadata = &StackMetadata{
		Name: "roboshop",
	}
	s.Spec = &stack.Spec{}

	type stackConfig Stack
	ys := (*stackConfig)(s)

	if err := unmarshal(ys); err != nil {
		return err
	}

	if err := defaults.Set(s); err != nil {
		return fmt.Errorf("failed to set defaults: %w", err)
	}

	return nil
}

// Validate performs a configuration sanity check
func (s *Stack) Validate() error {
	validation.ErrorTag = "yaml"
	return validation.ValidateStruct(s,
		validation.Field(&s.APIVersion, validation.Required, validation.In(APIVersion).Error("must equal "+APIVersion)),
		validation.Field(&s.Kind, validation.Required, validation.In("stack", "Stack").Error("must equal Stack")),
		validation.Field(&s.Spec),
	)
}
