package ncfile

import (
	"strconv"
	"strings"

	"github.com/fhs/go-netcdf/netcdf"
)

// AttrValue is the tagged value of one attribute: either text or a
// sequence of numbers (a scalar attribute is a sequence of length one).
type AttrValue struct {
	Text bool
	Str  string
	Nums []float64
}

// Attribute is one name/value metadata entry on a variable or file.
type Attribute struct {
	Name  string
	Value AttrValue
}

// Render formats the value the way reports print it: text verbatim,
// a scalar as a bare number, a sequence as "[a b c]".
func (v AttrValue) Render() string {
	if v.Text {
		return v.Str
	}
	if len(v.Nums) == 1 {
		return formatNum(v.Nums[0])
	}
	parts := make([]string, len(v.Nums))
	for i, n := range v.Nums {
		parts[i] = formatNum(n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatNum(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func varAttrs(v netcdf.Var) ([]Attribute, error) {
	n, err := v.NAttrs()
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, 0, n)
	for i := 0; i < n; i++ {
		a, err := v.AttrN(i)
		if err != nil {
			return nil, err
		}
		if val, ok := decodeAttr(a); ok {
			attrs = append(attrs, Attribute{Name: a.Name(), Value: val})
		}
	}
	return attrs, nil
}

func globalAttrs(ds netcdf.Dataset) ([]Attribute, error) {
	n, err := ds.NAttrs()
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, 0, n)
	for i := 0; i < n; i++ {
		a, err := ds.AttrN(i)
		if err != nil {
			return nil, err
		}
		if val, ok := decodeAttr(a); ok {
			attrs = append(attrs, Attribute{Name: a.Name(), Value: val})
		}
	}
	return attrs, nil
}

// decodeAttr reads an attribute into an AttrValue. Attribute types with no
// numeric or text representation are skipped rather than failing the whole
// enumeration.
func decodeAttr(a netcdf.Attr) (AttrValue, bool) {
	t, err := a.Type()
	if err != nil {
		return AttrValue{}, false
	}
	n, err := a.Len()
	if err != nil {
		return AttrValue{}, false
	}
	switch t {
	case netcdf.CHAR:
		b := make([]byte, n)
		if err := a.ReadBytes(b); err != nil {
			return AttrValue{}, false
		}
		return AttrValue{Text: true, Str: string(b)}, true
	case netcdf.DOUBLE:
		nums := make([]float64, n)
		if err := a.ReadFloat64s(nums); err != nil {
			return AttrValue{}, false
		}
		return AttrValue{Nums: nums}, true
	case netcdf.FLOAT:
		tmp := make([]float32, n)
		if err := a.ReadFloat32s(tmp); err != nil {
			return AttrValue{}, false
		}
		return AttrValue{Nums: widenFloat32(tmp)}, true
	case netcdf.INT:
		tmp := make([]int32, n)
		if err := a.ReadInt32s(tmp); err != nil {
			return AttrValue{}, false
		}
		nums := make([]float64, len(tmp))
		for i, v := range tmp {
			nums[i] = float64(v)
		}
		return AttrValue{Nums: nums}, true
	case netcdf.SHORT:
		tmp := make([]int16, n)
		if err := a.ReadInt16s(tmp); err != nil {
			return AttrValue{}, false
		}
		nums := make([]float64, len(tmp))
		for i, v := range tmp {
			nums[i] = float64(v)
		}
		return AttrValue{Nums: nums}, true
	case netcdf.INT64:
		tmp := make([]int64, n)
		if err := a.ReadInt64s(tmp); err != nil {
			return AttrValue{}, false
		}
		nums := make([]float64, len(tmp))
		for i, v := range tmp {
			nums[i] = float64(v)
		}
		return AttrValue{Nums: nums}, true
	default:
		return AttrValue{}, false
	}
}

func widenFloat32(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
