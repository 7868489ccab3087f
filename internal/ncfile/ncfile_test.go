package ncfile_test

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"

	"gridstat/internal/ncfile"
)

// writeFixture creates a small NetCDF file with two 1-D coordinate axes
// and two 2-D data variables, one of which stores fill values.
func writeFixture(t *testing.T, path string) {
	t.Helper()
	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	latDim, err := ds.AddDim("lat", 2)
	if err != nil {
		t.Fatalf("add lat dim: %v", err)
	}
	lonDim, err := ds.AddDim("lon", 3)
	if err != nil {
		t.Fatalf("add lon dim: %v", err)
	}

	latVar, err := ds.AddVar("lat", netcdf.DOUBLE, []netcdf.Dim{latDim})
	if err != nil {
		t.Fatalf("add lat var: %v", err)
	}
	if err := latVar.Attr("units").WriteBytes([]byte("degrees_north")); err != nil {
		t.Fatalf("lat units attr: %v", err)
	}
	lonVar, err := ds.AddVar("lon", netcdf.DOUBLE, []netcdf.Dim{lonDim})
	if err != nil {
		t.Fatalf("add lon var: %v", err)
	}
	band1, err := ds.AddVar("band1", netcdf.DOUBLE, []netcdf.Dim{latDim, lonDim})
	if err != nil {
		t.Fatalf("add band1 var: %v", err)
	}
	if err := band1.Attr("units").WriteBytes([]byte("kelvin")); err != nil {
		t.Fatalf("band1 units attr: %v", err)
	}
	if err := band1.Attr("scale_factor").WriteFloat64s([]float64{0.5}); err != nil {
		t.Fatalf("band1 scale attr: %v", err)
	}
	band2, err := ds.AddVar("band2", netcdf.DOUBLE, []netcdf.Dim{latDim, lonDim})
	if err != nil {
		t.Fatalf("add band2 var: %v", err)
	}
	if err := band2.Attr("_FillValue").WriteFloat64s([]float64{-9999}); err != nil {
		t.Fatalf("band2 fill attr: %v", err)
	}
	if err := ds.Attr("title").WriteBytes([]byte("fixture dataset")); err != nil {
		t.Fatalf("global title attr: %v", err)
	}
	if err := ds.EndDef(); err != nil {
		t.Fatalf("end define mode: %v", err)
	}

	if err := latVar.WriteFloat64s([]float64{10, 20}); err != nil {
		t.Fatalf("write lat: %v", err)
	}
	if err := lonVar.WriteFloat64s([]float64{100, 110, 120}); err != nil {
		t.Fatalf("write lon: %v", err)
	}
	// Row-major: rows are lat, columns are lon.
	if err := band1.WriteFloat64s([]float64{1, 2, 3, 4, math.NaN(), 6}); err != nil {
		t.Fatalf("write band1: %v", err)
	}
	if err := band2.WriteFloat64s([]float64{-9999, -9999, -9999, -9999, -9999, -9999}); err != nil {
		t.Fatalf("write band2: %v", err)
	}
	if err := ds.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
}

func openFixture(t *testing.T) *ncfile.Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.nc")
	writeFixture(t, path)
	ds, err := ncfile.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { ds.Close() })
	return ds
}

func TestOpen_EnumeratesVariablesInOrder(t *testing.T) {
	ds := openFixture(t)
	vars := ds.Variables()
	if len(vars) != 4 {
		t.Fatalf("expected 4 variables, got %d", len(vars))
	}
	for i, want := range []string{"lat", "lon", "band1", "band2"} {
		if vars[i].Name != want {
			t.Fatalf("variable %d: got %s, want %s", i, vars[i].Name, want)
		}
	}
}

func TestVariable_ShapeRankAndType(t *testing.T) {
	ds := openFixture(t)
	v, err := ds.Var("band1")
	if err != nil {
		t.Fatalf("var: %v", err)
	}
	if v.Rank() != 2 {
		t.Fatalf("rank: got %d", v.Rank())
	}
	if got := v.ShapeString(); got != "(2, 3)" {
		t.Fatalf("shape: got %s", got)
	}
	if got := v.DimsString(); got != "(lat, lon)" {
		t.Fatalf("dims: got %s", got)
	}
	if got := v.TypeName(); got != "float64" {
		t.Fatalf("dtype: got %s", got)
	}
	if v.Size() != 6 {
		t.Fatalf("size: got %d", v.Size())
	}
}

func TestVariable_AttrsPreserveDeclarationOrder(t *testing.T) {
	ds := openFixture(t)
	v, err := ds.Var("band1")
	if err != nil {
		t.Fatalf("var: %v", err)
	}
	if len(v.Attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(v.Attrs))
	}
	if v.Attrs[0].Name != "units" || v.Attrs[0].Value.Render() != "kelvin" {
		t.Fatalf("first attr: %+v", v.Attrs[0])
	}
	if v.Attrs[1].Name != "scale_factor" || v.Attrs[1].Value.Render() != "0.5" {
		t.Fatalf("second attr: %+v", v.Attrs[1])
	}
}

func TestDataset_GlobalAttrs(t *testing.T) {
	ds := openFixture(t)
	attrs := ds.GlobalAttrs()
	if len(attrs) != 1 || attrs[0].Name != "title" || attrs[0].Value.Render() != "fixture dataset" {
		t.Fatalf("global attrs: %+v", attrs)
	}
}

func TestDataset_VarNotFound(t *testing.T) {
	ds := openFixture(t)
	_, err := ds.Var("ghost")
	if !errors.Is(err, ncfile.ErrNoSuchVariable) {
		t.Fatalf("expected ErrNoSuchVariable, got %v", err)
	}
}

func TestReadFloat64s_RowMajorFlatten(t *testing.T) {
	ds := openFixture(t)
	v, err := ds.Var("band1")
	if err != nil {
		t.Fatalf("var: %v", err)
	}
	got, err := v.ReadFloat64s()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []float64{1, 2, 3, 4, math.NaN(), 6}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Fatalf("element %d: expected NaN, got %v", i, got[i])
			}
			continue
		}
		if got[i] != want[i] {
			t.Fatalf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadFloat64s_FillValuesBecomeNaN(t *testing.T) {
	ds := openFixture(t)
	v, err := ds.Var("band2")
	if err != nil {
		t.Fatalf("var: %v", err)
	}
	got, err := v.ReadFloat64s()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for i, x := range got {
		if !math.IsNaN(x) {
			t.Fatalf("element %d: expected NaN for fill value, got %v", i, x)
		}
	}
}

func TestDataVariables_ExcludesCoordinateAxes(t *testing.T) {
	ds := openFixture(t)
	data := ncfile.DataVariables(ds.Variables())
	if len(data) != 2 {
		t.Fatalf("expected 2 data variables, got %d", len(data))
	}
	if data[0].Name != "band1" || data[1].Name != "band2" {
		t.Fatalf("unexpected data variables: %s, %s", data[0].Name, data[1].Name)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := ncfile.Open(filepath.Join(t.TempDir(), "absent.nc"))
	if err == nil {
		t.Fatal("expected error opening an absent file")
	}
}
