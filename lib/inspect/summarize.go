// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"errors"

	"github.com/bureau-foundation/abcinspect/lib/abc"
	"github.com/bureau-foundation/abcinspect/lib/abcgeom"
)

// geometryView is what the shared geometry summary needs from a
// PolyMesh, SubD or Curves view.
type geometryView interface {
	NumProperties() int
	PropertyHeader(index int) abc.PropertyHeader
	NumSamples() (uint32, error)
	UVsSamples() (uint32, error)
	ArbGeomParams() (*abc.CompoundProperty, error)
}

// normalsView is implemented by geometry views that carry normals.
// Subdivision surfaces do not.
type normalsView interface {
	NormalsSamples() (uint32, error)
}

func (w *walker) summarizePolyMesh(object *abc.Object) {
	view, err := abcgeom.NewPolyMeshSchema(object)
	if err != nil {
		w.schemaMismatch(object, err)
		w.report.line("  Mesh Property Count: 0.")
		return
	}
	w.summarizeGeometry(object, "Mesh", view)
}

func (w *walker) summarizeCurves(object *abc.Object) {
	view, err := abcgeom.NewCurvesSchema(object)
	if err != nil {
		w.schemaMismatch(object, err)
		w.report.line("  Curves Property Count: 0.")
		return
	}
	w.summarizeGeometry(object, "Curves", view)
}

func (w *walker) summarizeSubD(object *abc.Object) {
	view, err := abcgeom.NewSubDSchema(object)
	if err != nil {
		w.schemaMismatch(object, err)
		w.report.line("  SubD Property Count: 0.")
		return
	}
	w.summarizeGeometry(object, "SubD", view)

	scheme, err := view.Scheme()
	w.degraded(object, "subdivision scheme", err)
	w.report.line("  Subdivision Scheme: %s", formatString(scheme, err))

	for _, field := range []struct {
		label string
		read  func() (int32, error)
	}{
		{"Face Varying Interpolate Boundary", view.FaceVaryingInterpolateBoundary},
		{"Face Varying Propagate Corners", view.FaceVaryingPropagateCorners},
		{"Interpolate Boundary", view.InterpolateBoundary},
	} {
		value, err := field.read()
		w.degraded(object, field.label, err)
		w.report.line("  %s: %s", field.label, formatInt32(value, err))
	}
}

func (w *walker) summarizeFaceSet(object *abc.Object) {
	view, err := abcgeom.NewFaceSetSchema(object)
	if err != nil {
		w.schemaMismatch(object, err)
		w.report.line("  Sample Count: 0")
		return
	}
	samples, err := view.NumSamples()
	w.degraded(object, "face set samples", err)
	w.report.line("  Sample Count: %s", formatCount(samples, err))
}

func (w *walker) summarizeXform(object *abc.Object) {
	view, err := abcgeom.NewXformSchema(object)
	if err != nil {
		w.schemaMismatch(object, err)
		w.report.line("  Sample Count: 0")
		w.report.line("  Number of Ops: 0")
		return
	}
	samples, err := view.NumSamples()
	w.degraded(object, "transform samples", err)
	w.report.line("  Sample Count: %s", formatCount(samples, err))

	ops, err := view.NumOps()
	w.degraded(object, "transform operations", err)
	w.report.line("  Number of Ops: %s", formatInt(ops, err))
}

func (w *walker) summarizeMaterial(object *abc.Object) {
	view, err := abcgeom.NewMaterialSchema(object)
	if err != nil {
		w.schemaMismatch(object, err)
		w.report.line("  Target Count: 0")
		return
	}

	// Targets are never discovered from the schema, so the report
	// always shows zero and the per-target section does not run.
	var targetNames []string
	w.report.line("  Target Count: %d", len(targetNames))

	for t, target := range targetNames {
		w.report.line("  Target[%d] name: %s", t, target)
		shaderTypes := view.ShaderTypesForTarget(target)
		w.report.line("    Shader Type Count: %d", len(shaderTypes))
		for s, shaderType := range shaderTypes {
			w.report.line("    Shader Type [%d] name: %s", s, shaderType)
			params, err := view.ShaderParameters(target, shaderType)
			w.degraded(object, "shader parameters", err)
			count := 0
			if err == nil {
				count = params.NumProperties()
			}
			w.report.line("    Shader Parameter Count: %s", formatInt(count, err))
		}
	}
}

// summarizeGeometry lists the schema properties of a geometry view
// with sample counts for the well-known parameters.
func (w *walker) summarizeGeometry(object *abc.Object, label string, view geometryView) {
	count := view.NumProperties()
	w.report.line("  %s Property Count: %d.", label, count)

	for i := 0; i < count; i++ {
		header := view.PropertyHeader(i)
		w.report.line("  Property[%d] name: %s", i, header.Name)

		switch header.Name {
		case abcgeom.PositionsName:
			w.sampleCount(object, header.Name, view.NumSamples)
		case abcgeom.NormalsName:
			if normals, ok := view.(normalsView); ok {
				w.sampleCount(object, header.Name, normals.NormalsSamples)
			}
		case abcgeom.UVName, abcgeom.STName:
			w.sampleCount(object, header.Name, view.UVsSamples)
		case abcgeom.ArbGeomParamsName:
			w.arbGeomParams(object, view)
		}
	}
}

func (w *walker) sampleCount(object *abc.Object, name string, resolve func() (uint32, error)) {
	count, err := resolve()
	w.degraded(object, name, err)
	w.report.line("    Sample Count: %s", formatCount(count, err))
}

// arbGeomParams lists the names of the arbitrary geometry parameters.
// Their sample counts are not resolved.
func (w *walker) arbGeomParams(object *abc.Object, view geometryView) {
	params, err := view.ArbGeomParams()
	if err != nil {
		w.degraded(object, abcgeom.ArbGeomParamsName, err)
		w.report.line("    GeomParams Count: %s.", absent)
		return
	}
	count := params.NumProperties()
	w.report.line("    GeomParams Count: %d.", count)
	for g := 0; g < count; g++ {
		w.report.line("    arbGeomParam[%d] name: %s", g, params.PropertyHeader(g).Name)
	}
}

// degraded logs a field that will be reported as absent. Property
// resolution failures are expected on fuzzed input and stay at debug
// level; anything else is a reader error worth a warning.
func (w *walker) degraded(object *abc.Object, field string, err error) {
	if err == nil {
		return
	}
	level := w.logger.Warn
	if errors.Is(err, abcgeom.ErrPropertyResolution) {
		level = w.logger.Debug
	}
	level("field degraded", "path", object.FullName(), "field", field, "error", err)
}
