// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archivetest

// Versions stamped on fixtures. The reader does not interpret them.
const (
	FixtureFileVersion    = 1
	FixtureLibraryVersion = 10709
)

// Scene returns the reference scene: a transform "xform" with three
// samples and two operations, holding a polygon mesh "mesh" with three
// position samples, three normal samples and one arbitrary geometry
// parameter "Cd".
func Scene() Archive {
	mesh := PolyMesh("mesh",
		Points(3),
		Normals(3),
		ArbGeomParams(Array("Cd", C3f, 1)),
	)
	return Archive{
		FileVersion:    FixtureFileVersion,
		LibraryVersion: FixtureLibraryVersion,
		MetaData:       "_ai_Application=abcinspect;_ai_Description=scene",
		Top: Object{Children: []Object{
			Xform("xform", 3, 1, 2).With(mesh),
		}},
	}
}

// Catalog returns an archive with one object of every recognized type
// and one unrecognized object, in dispatch priority order.
func Catalog() Archive {
	return Archive{
		FileVersion:    FixtureFileVersion,
		LibraryVersion: FixtureLibraryVersion,
		Top: Object{Children: []Object{
			PolyMesh("mesh", Points(2), UVs(2)).With(
				FaceSet("faces", Array(".faces", Int32, 2)),
			),
			SubD("subd",
				Points(1),
				IndexedUVs(1),
				Scalar(".scheme", String, StringSample("catmull-clark")),
				Scalar(".faceVaryingInterpolateBoundary", Int32, Int32Sample(1)),
				Scalar(".faceVaryingPropagateCorners", Int32, Int32Sample(0)),
				Scalar(".interpolateBoundary", Int32, Int32Sample(2)),
			),
			Curves("curves", Points(4), Array("nVertices", Int32, 4)),
			Xform("xform", 1, 3),
			Material("material",
				ShaderParams("arnold", "surface", Scalar("Kd", Int32, Int32Sample(1))),
				ShaderParams("prman", "surface"),
			),
			{Name: "locator", MetaData: "schema=AbcGeom_Locator_v1"},
		}},
	}
}
