// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abcgeom

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/abcinspect/lib/abc"
)

// paramsSuffix ends the name of every shader parameter compound:
// "<target>.<shaderType>.params".
const paramsSuffix = "params"

// MaterialSchema is the view of a material.
type MaterialSchema struct {
	schemaBase
}

// NewMaterialSchema builds the view of a Material object.
func NewMaterialSchema(object *abc.Object) (*MaterialSchema, error) {
	base, err := newSchemaBase(object, Material)
	if err != nil {
		return nil, err
	}
	return &MaterialSchema{base}, nil
}

// TargetNames returns the render targets that have at least one
// shader parameter compound, in declaration order.
func (s *MaterialSchema) TargetNames() []string {
	var targets []string
	seen := make(map[string]struct{})
	for i := 0; i < s.compound.NumProperties(); i++ {
		target, _, ok := splitParamsName(s.compound.PropertyHeader(i))
		if !ok {
			continue
		}
		if _, duplicate := seen[target]; duplicate {
			continue
		}
		seen[target] = struct{}{}
		targets = append(targets, target)
	}
	return targets
}

// ShaderTypesForTarget returns the shader types bound to target, in
// declaration order.
func (s *MaterialSchema) ShaderTypesForTarget(target string) []string {
	var shaderTypes []string
	for i := 0; i < s.compound.NumProperties(); i++ {
		candidate, shaderType, ok := splitParamsName(s.compound.PropertyHeader(i))
		if ok && candidate == target {
			shaderTypes = append(shaderTypes, shaderType)
		}
	}
	return shaderTypes
}

// ShaderParameters reads the parameter compound of shaderType on
// target.
func (s *MaterialSchema) ShaderParameters(target, shaderType string) (*abc.CompoundProperty, error) {
	name := target + "." + shaderType + "." + paramsSuffix
	params, err := s.compound.Compound(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPropertyResolution, err)
	}
	return params, nil
}

// splitParamsName splits a compound named "<target>.<type>.params".
func splitParamsName(header abc.PropertyHeader) (target, shaderType string, ok bool) {
	if !header.IsCompound() {
		return "", "", false
	}
	parts := strings.Split(header.Name, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] != paramsSuffix {
		return "", "", false
	}
	return parts[0], parts[1], true
}
