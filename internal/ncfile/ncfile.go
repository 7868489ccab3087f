// Package ncfile wraps read-only access to a NetCDF file: enumerating the
// declared variables with their dimensions and attributes, classifying
// data variables versus coordinate axes, and reading whole arrays as
// flattened float64 sequences.
package ncfile

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fhs/go-netcdf/netcdf"
)

// ErrNoSuchVariable is returned when a variable name is not declared in
// the file.
var ErrNoSuchVariable = errors.New("no such variable")

// Dim is one dimension of a variable: its axis name and extent.
type Dim struct {
	Name string
	Len  int
}

// Variable describes one stored array. Attrs preserves the attribute
// declaration order from the file so reports render deterministically.
type Variable struct {
	Name  string
	Dims  []Dim
	Type  netcdf.Type
	Attrs []Attribute

	v netcdf.Var
}

// Rank is the number of dimensions.
func (v *Variable) Rank() int { return len(v.Dims) }

// Shape returns the per-dimension extents in declaration order.
func (v *Variable) Shape() []int {
	shape := make([]int, len(v.Dims))
	for i, d := range v.Dims {
		shape[i] = d.Len
	}
	return shape
}

// Size is the total element count (product of extents).
func (v *Variable) Size() int {
	n := 1
	for _, d := range v.Dims {
		n *= d.Len
	}
	return n
}

// TypeName reports the element datatype in the conventional short form.
func (v *Variable) TypeName() string {
	switch v.Type {
	case netcdf.DOUBLE:
		return "float64"
	case netcdf.FLOAT:
		return "float32"
	case netcdf.INT:
		return "int32"
	case netcdf.SHORT:
		return "int16"
	case netcdf.INT64:
		return "int64"
	case netcdf.UBYTE:
		return "uint8"
	case netcdf.BYTE:
		return "int8"
	case netcdf.CHAR:
		return "char"
	case netcdf.STRING:
		return "string"
	case netcdf.USHORT:
		return "uint16"
	case netcdf.UINT:
		return "uint32"
	case netcdf.UINT64:
		return "uint64"
	default:
		return fmt.Sprintf("type(%d)", int(v.Type))
	}
}

// ShapeString renders the shape as a tuple, e.g. "(180, 360)".
func (v *Variable) ShapeString() string {
	parts := make([]string, len(v.Dims))
	for i, d := range v.Dims {
		parts[i] = fmt.Sprintf("%d", d.Len)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// DimsString renders the dimension names as a tuple, e.g. "(lat, lon)".
func (v *Variable) DimsString() string {
	parts := make([]string, len(v.Dims))
	for i, d := range v.Dims {
		parts[i] = d.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ReadFloat64s reads the variable's whole array and returns it as a flat
// float64 slice in the file's native row-major order (last axis fastest).
// Narrower numeric element types are widened. Elements equal to the
// variable's _FillValue or missing_value attribute are returned as NaN so
// downstream cleaning excludes them the same way as stored NaNs.
func (v *Variable) ReadFloat64s() ([]float64, error) {
	total := v.Size()
	var flat []float64
	switch v.Type {
	case netcdf.DOUBLE:
		flat = make([]float64, total)
		if err := v.v.ReadFloat64s(flat); err != nil {
			return nil, fmt.Errorf("read %s: %w", v.Name, err)
		}
	case netcdf.FLOAT:
		tmp := make([]float32, total)
		if err := v.v.ReadFloat32s(tmp); err != nil {
			return nil, fmt.Errorf("read %s: %w", v.Name, err)
		}
		flat = make([]float64, total)
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.INT:
		tmp := make([]int32, total)
		if err := v.v.ReadInt32s(tmp); err != nil {
			return nil, fmt.Errorf("read %s: %w", v.Name, err)
		}
		flat = make([]float64, total)
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.SHORT:
		tmp := make([]int16, total)
		if err := v.v.ReadInt16s(tmp); err != nil {
			return nil, fmt.Errorf("read %s: %w", v.Name, err)
		}
		flat = make([]float64, total)
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.INT64:
		tmp := make([]int64, total)
		if err := v.v.ReadInt64s(tmp); err != nil {
			return nil, fmt.Errorf("read %s: %w", v.Name, err)
		}
		flat = make([]float64, total)
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.UBYTE:
		tmp := make([]uint8, total)
		if err := v.v.ReadUint8s(tmp); err != nil {
			return nil, fmt.Errorf("read %s: %w", v.Name, err)
		}
		flat = make([]float64, total)
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	default:
		return nil, fmt.Errorf("read %s: unsupported variable type %s", v.Name, v.TypeName())
	}

	if fv, ok := v.fillValue(); ok {
		for i, val := range flat {
			if val == fv {
				flat[i] = math.NaN()
			}
		}
	}
	return flat, nil
}

// fillValue returns the _FillValue or missing_value attribute if present.
func (v *Variable) fillValue() (float64, bool) {
	for _, name := range []string{"_FillValue", "missing_value"} {
		for _, a := range v.Attrs {
			if a.Name == name && !a.Value.Text && len(a.Value.Nums) > 0 {
				return a.Value.Nums[0], true
			}
		}
	}
	return 0, false
}

// Dataset is a NetCDF file opened read-only. Variable metadata is captured
// once at open time; array reads go back to the underlying handle.
type Dataset struct {
	path   string
	ds     netcdf.Dataset
	vars   []*Variable
	global []Attribute
}

// Open opens path read-only and enumerates its variables in declaration
// order.
func Open(path string) (*Dataset, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("open netcdf file %s: %w", path, err)
	}
	d := &Dataset{path: path, ds: nc}
	if err := d.enumerate(); err != nil {
		_ = nc.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the underlying file handle.
func (d *Dataset) Close() error { return d.ds.Close() }

// Path returns the source file path the dataset was opened from.
func (d *Dataset) Path() string { return d.path }

// Variables returns all declared variables in declaration order.
func (d *Dataset) Variables() []*Variable { return d.vars }

// GlobalAttrs returns the file-level attributes in declaration order.
func (d *Dataset) GlobalAttrs() []Attribute { return d.global }

// Var looks up a variable by name, returning ErrNoSuchVariable when the
// file does not declare it.
func (d *Dataset) Var(name string) (*Variable, error) {
	for _, v := range d.vars {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchVariable, name)
}

func (d *Dataset) enumerate() error {
	nvars, err := d.ds.NVars()
	if err != nil {
		return fmt.Errorf("enumerate variables: %w", err)
	}
	d.vars = make([]*Variable, 0, nvars)
	for i := 0; i < nvars; i++ {
		nv := d.ds.VarN(i)
		name, err := nv.Name()
		if err != nil {
			return fmt.Errorf("variable %d name: %w", i, err)
		}
		dims, err := nv.Dims()
		if err != nil {
			return fmt.Errorf("variable %s dims: %w", name, err)
		}
		v := &Variable{Name: name, Dims: make([]Dim, len(dims)), v: nv}
		for j, dim := range dims {
			dn, err := dim.Name()
			if err != nil {
				return fmt.Errorf("variable %s dim %d name: %w", name, j, err)
			}
			dl, err := dim.Len()
			if err != nil {
				return fmt.Errorf("variable %s dim %s length: %w", name, dn, err)
			}
			v.Dims[j] = Dim{Name: dn, Len: int(dl)}
		}
		if v.Type, err = nv.Type(); err != nil {
			return fmt.Errorf("variable %s type: %w", name, err)
		}
		if v.Attrs, err = varAttrs(nv); err != nil {
			return fmt.Errorf("variable %s attributes: %w", name, err)
		}
		d.vars = append(d.vars, v)
	}

	d.global, err = globalAttrs(d.ds)
	if err != nil {
		return fmt.Errorf("global attributes: %w", err)
	}
	return nil
}

// DataVariables filters vars down to data variables: arrays of rank >= 2.
// Rank-1 coordinate axes (latitude, longitude, time) are excluded from
// auto-discovery but can still be selected by name.
func DataVariables(vars []*Variable) []*Variable {
	out := make([]*Variable, 0, len(vars))
	for _, v := range vars {
		if v.Rank() >= 2 {
			out = append(out, v)
		}
	}
	return out
}
