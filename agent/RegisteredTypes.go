package agent

import (
	"reflect"
	"sort"

	"github.com/golang/glog"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	// Single agent tabular methods
	QLearningTabular  Type = "QLearning-Tabular"
	MonteCarloTabular Type = "MonteCarlo-Tabular"

	// Multi-agent methods for stateless games
	IndependentQLearning Type = "IndependentQLearning-MultiAgent"
	JointActionLearning  Type = "JointActionLearning-MultiAgent"
)

// Registered types with the package. Once a Type has been registered
// with this map, a Config or ConfigList with that type can be created.
//
// No Type's are registered wtih this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes map[Type]reflect.Type

func init() {
	registeredTypes = make(map[Type]reflect.Type)
}

// Register registers an agent's Type with a concrete ConfigList type
// so that upon deserialization of a TypedConfigList, ConfigLists of
// type agentType are deserialized into the concrete type of configs.
func Register(agentType Type, configs ConfigList) {
	glog.V(2).Infof("Registering: %v", agentType)
	registeredTypes[agentType] = reflect.TypeOf(configs)
}

// RegisteredTypes returns all registered agent Types in sorted order
func RegisteredTypes() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
