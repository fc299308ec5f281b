// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abcgeom_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/bureau-foundation/abcinspect/lib/abc"
	"github.com/bureau-foundation/abcinspect/lib/abcgeom"
	"github.com/bureau-foundation/abcinspect/lib/archivetest"
	"github.com/bureau-foundation/abcinspect/lib/testutil"
)

// topChildren opens archive and returns the top object's children.
func topChildren(t *testing.T, archive archivetest.Archive) []*abc.Object {
	t.Helper()
	path := testutil.WriteFile(t, "archive.abc", archive.Bytes())
	opened := abc.Open(path, abc.Options{})
	t.Cleanup(func() { opened.Close() })
	if !opened.Valid() {
		t.Fatalf("archive is invalid: %v", opened.Err())
	}
	top := opened.Top()
	children := make([]*abc.Object, top.NumChildren())
	for i := range children {
		child, err := top.Child(i)
		if err != nil {
			t.Fatalf("Child(%d) failed: %v", i, err)
		}
		children[i] = child
	}
	return children
}

func header(metadata string) abc.ObjectHeader {
	return abc.ObjectHeader{Name: "node", FullName: "/node", MetaData: abc.ParseMetaData(metadata)}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		metadata string
		want     abcgeom.TypeTag
	}{
		{archivetest.SchemaMetaData(archivetest.PolyMeshSchema, archivetest.GeomBase), abcgeom.PolyMesh},
		{archivetest.SchemaMetaData(archivetest.SubDSchema, archivetest.GeomBase), abcgeom.SubD},
		{archivetest.SchemaMetaData(archivetest.FaceSetSchema, archivetest.FaceSetBase), abcgeom.FaceSet},
		{archivetest.SchemaMetaData(archivetest.CurvesSchema, archivetest.GeomBase), abcgeom.Curves},
		{archivetest.SchemaMetaData(archivetest.XformSchema, archivetest.XformBase), abcgeom.Xform},
		{archivetest.SchemaMetaData(archivetest.MaterialSchema, archivetest.MaterialBase), abcgeom.Material},
		{"", abcgeom.Unrecognized},
		{"schema=AbcGeom_PolyMesh_v1", abcgeom.Unrecognized},
		{"schemaObjTitle=AbcGeom_PolyMesh_v1:.xform", abcgeom.Unrecognized},
		{"schemaObjTitle=AbcGeom_Locator_v1:.locator", abcgeom.Unrecognized},
	}
	for _, test := range tests {
		first := abcgeom.Classify(header(test.metadata))
		second := abcgeom.Classify(header(test.metadata))
		if first != test.want {
			t.Errorf("Classify(%q) = %s, want %s", test.metadata, first, test.want)
		}
		if first != second {
			t.Errorf("Classify(%q) is not stable: %s then %s", test.metadata, first, second)
		}
	}
}

func TestTypeTagString(t *testing.T) {
	if abcgeom.SubD.String() != "subd" || abcgeom.Unrecognized.String() != "unrecognized" {
		t.Errorf("tag names: %s %s", abcgeom.SubD, abcgeom.Unrecognized)
	}
	if abcgeom.TypeTag(42).String() != "unknown(42)" {
		t.Errorf("TypeTag(42) = %s", abcgeom.TypeTag(42))
	}
}

func TestCatalogViews(t *testing.T) {
	children := topChildren(t, archivetest.Catalog())

	mesh, err := abcgeom.NewPolyMeshSchema(children[0])
	if err != nil {
		t.Fatalf("NewPolyMeshSchema failed: %v", err)
	}
	if mesh.Tag() != abcgeom.PolyMesh || mesh.Object() != children[0] {
		t.Errorf("mesh view: tag %s", mesh.Tag())
	}
	if mesh.NumProperties() != 2 || mesh.PropertyHeader(1).Name != "uv" {
		t.Errorf("mesh properties: %d", mesh.NumProperties())
	}
	expectCount(t, "mesh samples", 2)(mesh.NumSamples())
	expectCount(t, "mesh uv samples", 2)(mesh.UVsSamples())
	if _, err := mesh.NormalsSamples(); !errors.Is(err, abcgeom.ErrPropertyResolution) {
		t.Errorf("mesh without N: error = %v, want ErrPropertyResolution", err)
	}
	if _, err := mesh.ArbGeomParams(); !errors.Is(err, abcgeom.ErrPropertyResolution) {
		t.Errorf("mesh without .arbGeomParams: error = %v, want ErrPropertyResolution", err)
	}

	faceSetObject, err := children[0].Child(0)
	if err != nil {
		t.Fatalf("mesh Child(0) failed: %v", err)
	}
	faceSet, err := abcgeom.NewFaceSetSchema(faceSetObject)
	if err != nil {
		t.Fatalf("NewFaceSetSchema failed: %v", err)
	}
	expectCount(t, "faceset samples", 2)(faceSet.NumSamples())

	subd, err := abcgeom.NewSubDSchema(children[1])
	if err != nil {
		t.Fatalf("NewSubDSchema failed: %v", err)
	}
	expectCount(t, "subd samples", 1)(subd.NumSamples())
	expectCount(t, "subd indexed uv samples", 1)(subd.UVsSamples())
	scheme, err := subd.Scheme()
	if err != nil || scheme != "catmull-clark" {
		t.Errorf("Scheme = %q, %v", scheme, err)
	}
	for name, test := range map[string]struct {
		read func() (int32, error)
		want int32
	}{
		"FaceVaryingInterpolateBoundary": {subd.FaceVaryingInterpolateBoundary, 1},
		"FaceVaryingPropagateCorners":    {subd.FaceVaryingPropagateCorners, 0},
		"InterpolateBoundary":            {subd.InterpolateBoundary, 2},
	} {
		got, err := test.read()
		if err != nil || got != test.want {
			t.Errorf("%s = %d, %v; want %d", name, got, err, test.want)
		}
	}

	curves, err := abcgeom.NewCurvesSchema(children[2])
	if err != nil {
		t.Fatalf("NewCurvesSchema failed: %v", err)
	}
	expectCount(t, "curves samples", 4)(curves.NumSamples())

	xform, err := abcgeom.NewXformSchema(children[3])
	if err != nil {
		t.Fatalf("NewXformSchema failed: %v", err)
	}
	expectCount(t, "xform samples", 1)(xform.NumSamples())
	if ops, err := xform.NumOps(); err != nil || ops != 1 {
		t.Errorf("NumOps = %d, %v; want 1", ops, err)
	}

	material, err := abcgeom.NewMaterialSchema(children[4])
	if err != nil {
		t.Fatalf("NewMaterialSchema failed: %v", err)
	}
	if targets := material.TargetNames(); !slices.Equal(targets, []string{"arnold", "prman"}) {
		t.Errorf("TargetNames = %q", targets)
	}
	if types := material.ShaderTypesForTarget("arnold"); !slices.Equal(types, []string{"surface"}) {
		t.Errorf("ShaderTypesForTarget(arnold) = %q", types)
	}
	params, err := material.ShaderParameters("arnold", "surface")
	if err != nil || params.NumProperties() != 1 {
		t.Errorf("ShaderParameters(arnold, surface): %v", err)
	}
	if _, err := material.ShaderParameters("arnold", "displacement"); !errors.Is(err, abcgeom.ErrPropertyResolution) {
		t.Errorf("missing shader type: error = %v, want ErrPropertyResolution", err)
	}

	if _, err := abcgeom.NewPolyMeshSchema(children[5]); !errors.Is(err, abcgeom.ErrSchemaMismatch) {
		t.Errorf("view of unrecognized object: error = %v, want ErrSchemaMismatch", err)
	}
	if _, err := abcgeom.NewXformSchema(children[0]); !errors.Is(err, abcgeom.ErrSchemaMismatch) {
		t.Errorf("xform view of a mesh: error = %v, want ErrSchemaMismatch", err)
	}
}

func TestMalformedPositions(t *testing.T) {
	children := topChildren(t, archivetest.Archive{Top: archivetest.Object{Children: []archivetest.Object{
		archivetest.PolyMesh("scalarP", archivetest.Scalar("P", archivetest.P3f)),
		archivetest.PolyMesh("flatP", archivetest.Array("P", archivetest.V2f, 3)),
		archivetest.PolyMesh("compoundP", archivetest.Compound("P")),
	}}})
	for _, child := range children {
		mesh, err := abcgeom.NewPolyMeshSchema(child)
		if err != nil {
			t.Fatalf("%s: NewPolyMeshSchema failed: %v", child.Name(), err)
		}
		if _, err := mesh.NumSamples(); !errors.Is(err, abcgeom.ErrPropertyResolution) {
			t.Errorf("%s: NumSamples error = %v, want ErrPropertyResolution", child.Name(), err)
		}
	}
}

func TestTopologySampleCounts(t *testing.T) {
	children := topChildren(t, archivetest.Archive{Top: archivetest.Object{Children: []archivetest.Object{
		archivetest.PolyMesh("mesh",
			archivetest.Points(1),
			archivetest.Array(".faceIndices", archivetest.Int32, 5),
			archivetest.Array(".faceCounts", archivetest.Int32, 2),
		),
	}}})
	mesh, err := abcgeom.NewPolyMeshSchema(children[0])
	if err != nil {
		t.Fatalf("NewPolyMeshSchema failed: %v", err)
	}
	expectCount(t, "mesh samples", 5)(mesh.NumSamples())
}

func TestIndexedNormalsWithoutValues(t *testing.T) {
	children := topChildren(t, archivetest.Archive{Top: archivetest.Object{Children: []archivetest.Object{
		archivetest.Curves("curves",
			archivetest.Points(1),
			archivetest.Compound("N", archivetest.Array(".indices", archivetest.Int32, 1)),
		),
	}}})
	curves, err := abcgeom.NewCurvesSchema(children[0])
	if err != nil {
		t.Fatalf("NewCurvesSchema failed: %v", err)
	}
	if _, err := curves.NormalsSamples(); !errors.Is(err, abcgeom.ErrPropertyResolution) {
		t.Errorf("NormalsSamples error = %v, want ErrPropertyResolution", err)
	}
	if _, err := curves.UVsSamples(); !errors.Is(err, abcgeom.ErrPropertyResolution) {
		t.Errorf("UVsSamples without uv or st: error = %v, want ErrPropertyResolution", err)
	}
}

func TestMissingSchemaCompound(t *testing.T) {
	children := topChildren(t, archivetest.Archive{Top: archivetest.Object{Children: []archivetest.Object{
		{Name: "hollow", MetaData: archivetest.SchemaMetaData(archivetest.PolyMeshSchema, archivetest.GeomBase)},
	}}})
	if abcgeom.Classify(children[0].Header()) != abcgeom.PolyMesh {
		t.Fatal("hollow mesh should classify as PolyMesh")
	}
	if _, err := abcgeom.NewPolyMeshSchema(children[0]); !errors.Is(err, abcgeom.ErrSchemaMismatch) {
		t.Errorf("NewPolyMeshSchema error = %v, want ErrSchemaMismatch", err)
	}
}

func TestXformEdgeCases(t *testing.T) {
	children := topChildren(t, archivetest.Archive{Top: archivetest.Object{Children: []archivetest.Object{
		archivetest.SchemaObject("static", archivetest.XformSchema, archivetest.XformBase),
		archivetest.SchemaObject("badops", archivetest.XformSchema, archivetest.XformBase,
			archivetest.Array(".ops", archivetest.Int32, 1)),
	}}})

	static, err := abcgeom.NewXformSchema(children[0])
	if err != nil {
		t.Fatalf("NewXformSchema(static) failed: %v", err)
	}
	expectCount(t, "static samples", 0)(static.NumSamples())
	if ops, err := static.NumOps(); err != nil || ops != 0 {
		t.Errorf("static NumOps = %d, %v", ops, err)
	}

	badOps, err := abcgeom.NewXformSchema(children[1])
	if err != nil {
		t.Fatalf("NewXformSchema(badops) failed: %v", err)
	}
	if _, err := badOps.NumOps(); !errors.Is(err, abcgeom.ErrPropertyResolution) {
		t.Errorf("NumOps error = %v, want ErrPropertyResolution", err)
	}
}

func TestSubDExtrasDegrade(t *testing.T) {
	children := topChildren(t, archivetest.Archive{Top: archivetest.Object{Children: []archivetest.Object{
		archivetest.SubD("subd",
			archivetest.Points(1),
			archivetest.Scalar(".scheme", archivetest.Int32, archivetest.Int32Sample(3)),
			archivetest.Scalar(".interpolateBoundary", archivetest.Int32),
		),
	}}})
	subd, err := abcgeom.NewSubDSchema(children[0])
	if err != nil {
		t.Fatalf("NewSubDSchema failed: %v", err)
	}
	if _, err := subd.Scheme(); !errors.Is(err, abcgeom.ErrPropertyResolution) {
		t.Errorf("int32 .scheme: error = %v, want ErrPropertyResolution", err)
	}
	if _, err := subd.InterpolateBoundary(); !errors.Is(err, abcgeom.ErrPropertyResolution) {
		t.Errorf("sampleless .interpolateBoundary: error = %v, want ErrPropertyResolution", err)
	}
	if _, err := subd.FaceVaryingPropagateCorners(); !errors.Is(err, abcgeom.ErrPropertyResolution) {
		t.Errorf("missing .faceVaryingPropagateCorners: error = %v, want ErrPropertyResolution", err)
	}
}

func expectCount(t *testing.T, what string, want uint32) func(uint32, error) {
	t.Helper()
	return func(got uint32, err error) {
		t.Helper()
		if err != nil {
			t.Errorf("%s: %v", what, err)
			return
		}
		if got != want {
			t.Errorf("%s = %d, want %d", what, got, want)
		}
	}
}

func TestTypeTagText(t *testing.T) {
	for tag := abcgeom.Unrecognized; tag <= abcgeom.Material; tag++ {
		text, err := tag.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", tag, err)
		}
		var parsed abcgeom.TypeTag
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if parsed != tag {
			t.Errorf("UnmarshalText(%q) = %s, want %s", text, parsed, tag)
		}
	}
	if _, err := abcgeom.TypeTag(99).MarshalText(); err == nil {
		t.Error("MarshalText of an unknown tag should fail")
	}
	var parsed abcgeom.TypeTag
	if err := parsed.UnmarshalText([]byte("teapot")); err == nil {
		t.Error("UnmarshalText of an unknown name should fail")
	}
}
