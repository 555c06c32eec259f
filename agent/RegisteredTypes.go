package agent

import (
	"fmt"
	"sort"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	QLearning Type = "qlearning"
	Sarsa     Type = "sarsa"
)

// Registered types with the package. Once a Type has been registered
// with this map, a Config with that type can be created by NewConfig.
//
// No Type's are registered with this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes = make(map[Type]func() Config)

// Register registers an agent's Type with a function returning the
// default Config of that Type
func Register(agentType Type, newConfig func() Config) {
	registeredTypes[agentType] = newConfig
}

// NewConfig returns the default Config of a registered Type
func NewConfig(agentType Type) (Config, error) {
	newConfig, ok := registeredTypes[agentType]
	if !ok {
		return nil, fmt.Errorf("newConfig: type %q not registered, "+
			"registered types are %v", agentType, RegisteredTypes())
	}
	return newConfig(), nil
}

// RegisteredTypes returns the registered Types in sorted order
func RegisteredTypes() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
