package primitive

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"object-mapper/utils"
)

var (
	ErrNotPrimitive = errors.New("not a primitive type")
	ErrNotAllowed   = errors.New("conversion is not allowed")
	ErrConversion   = errors.New("conversion failed")
)

// DefaultTimeLayouts are tried in order when a string is parsed into time.Time.
var DefaultTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

var (
	stringerType      = reflect.TypeFor[fmt.Stringer]()
	textUnmarshalType = reflect.TypeFor[encoding.TextUnmarshaler]()
	validatorType     = reflect.TypeFor[interface{ IsValid() bool }]()
)

// Coercer converts scalar values between kinds.
// The zero value allows nothing; use NewCoercer for the permissive default.
type Coercer struct {
	Allowed     CategoryEnum
	TimeLayouts []string
}

func NewCoercer() *Coercer {
	return &Coercer{
		Allowed:     CategoryAll,
		TimeLayouts: DefaultTimeLayouts,
	}
}

// Coerce converts src into a value of type dst.
//
// Values whose type is already dst are returned unchanged. Named scalar types
// (enums) are converted through their underlying kind; strings reach them via
// encoding.TextUnmarshaler when available, and they reach strings via fmt.Stringer.
// An enum implementing IsValid() bool must report true for the result.
func (c *Coercer) Coerce(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if dst == nil || FromReflectType(dst) == 0 {
		return reflect.Value{}, fmt.Errorf("%w: target %v", ErrNotPrimitive, dst)
	}

	for src.IsValid() && src.Kind() == reflect.Interface {
		src = src.Elem()
	}

	if !src.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: nil source", ErrNotPrimitive)
	}

	if src.Type() == dst {
		return src, nil
	}

	if FromReflectType(src.Type()) == 0 {
		return reflect.Value{}, fmt.Errorf("%w: source %v", ErrNotPrimitive, src.Type())
	}

	if FromReflectType(dst) == KindPrimitiveEnum {
		return c.toEnum(src, dst)
	}

	if FromReflectType(src.Type()) == KindPrimitiveEnum {
		return c.fromEnum(src, dst)
	}

	return c.coerceKinds(src, dst)
}

func (c *Coercer) toEnum(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	srcKind := FromReflectType(src.Type())

	if srcKind == KindString || srcKind == KindPrimitiveEnum && src.Kind() == reflect.String {
		if !c.Allowed.Has(CategoryEnumString) {
			return reflect.Value{}, notAllowed(src.Type(), dst)
		}

		if reflect.PointerTo(dst).Implements(textUnmarshalType) {
			res := reflect.New(dst)
			err := res.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(src.String()))
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%w: %q to %v: %w", ErrConversion, src.String(), dst, err)
			}

			return validated(res.Elem())
		}
	}

	if srcKind == KindPrimitiveEnum {
		if !c.Allowed.Has(CategoryEnumString) {
			return reflect.Value{}, notAllowed(src.Type(), dst)
		}

		src = src.Convert(underlying(src.Type()))
	}

	base, err := c.coerceKinds(src, underlying(dst))
	if err != nil {
		return reflect.Value{}, err
	}

	return validated(base.Convert(dst))
}

func (c *Coercer) fromEnum(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if FromReflectType(dst) == KindString && src.Type().Implements(stringerType) {
		if !c.Allowed.Has(CategoryEnumString) {
			return reflect.Value{}, notAllowed(src.Type(), dst)
		}

		return reflect.ValueOf(src.Interface().(fmt.Stringer).String()).Convert(dst), nil
	}

	return c.coerceKinds(src.Convert(underlying(src.Type())), dst)
}

func validated(v reflect.Value) (reflect.Value, error) {
	if v.Type().Implements(validatorType) && !v.Interface().(interface{ IsValid() bool }).IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %v is not a valid %v", ErrConversion, v.Interface(), v.Type())
	}

	return v, nil
}

func notAllowed(from, to reflect.Type) error {
	return fmt.Errorf("%w: %v to %v", ErrNotAllowed, from, to)
}

// coerceKinds converts between two non-enum scalar types.
func (c *Coercer) coerceKinds(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	from, to := FromReflectType(src.Type()), FromReflectType(dst)

	if from == to {
		return src.Convert(dst), nil
	}

	if !c.Allowed.Allows(from, to) {
		return reflect.Value{}, notAllowed(src.Type(), dst)
	}

	var (
		res any
		err error
	)

	switch {
	case from.IsNumber() && to.IsNumber():
		return convertNumber(src, dst)
	case from.IsNumber() && to == KindString:
		res = formatNumber(src, from)
	case from == KindString && to.IsNumber():
		v, perr := parseNumber(src.String(), dst, to)
		if perr != nil && to == KindInt32 && utf8.RuneCountInString(src.String()) == 1 {
			r, _ := utf8.DecodeRuneInString(src.String())
			return reflect.ValueOf(r).Convert(dst), nil
		}

		return v, perr
	case from.IsInteger() && to == KindBool:
		res, err = intToBool(src, from)
	case from == KindBool && to.IsInteger():
		return boolToInt(src.Bool(), dst)
	case from == KindString && to == KindBool:
		res, err = parseBool(src.String())
	case from == KindBool && to == KindString:
		res = strconv.FormatBool(src.Bool())
	case from == KindString && to == KindTime:
		res, err = c.parseTime(src.String())
	case from == KindTime && to == KindString:
		res = src.Interface().(time.Time).Format(c.layouts()[0])
	case from.IsInteger() && to == KindTime:
		res, err = unixTime(src, from)
	case from == KindTime && to.IsInteger():
		return convertNumber(reflect.ValueOf(src.Interface().(time.Time).Unix()), dst)
	case from == KindString && to == KindDuration:
		res, err = time.ParseDuration(strings.TrimSpace(src.String()))
	case from == KindDuration && to == KindString:
		res = src.Interface().(time.Duration).String()
	case from.IsInteger() && to == KindDuration:
		return convertNumber(src, dst)
	case from == KindDuration && to.IsInteger():
		return convertNumber(reflect.ValueOf(int64(src.Interface().(time.Duration))), dst)
	case from.IsFloat() && to == KindDuration:
		res, err = secondsToDuration(src.Float())
	case from == KindDuration && to.IsFloat():
		res = src.Interface().(time.Duration).Seconds()
	case to == KindDecimal:
		res, err = toDecimal(src, from)
	case from == KindDecimal:
		return fromDecimal(src.Interface().(decimal.Decimal), dst, to)
	default:
		return reflect.Value{}, notAllowed(src.Type(), dst)
	}

	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %v to %v: %w", ErrConversion, src.Interface(), dst, err)
	}

	return reflect.ValueOf(res).Convert(dst), nil
}

func (c *Coercer) layouts() []string {
	if len(c.TimeLayouts) == 0 {
		return DefaultTimeLayouts
	}

	return c.TimeLayouts
}

func (c *Coercer) parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var errs []error
	for _, layout := range c.layouts() {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}

		errs = append(errs, err)
	}

	return time.Time{}, errors.Join(errs...)
}

func convertNumber(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	res := reflect.New(dst).Elem()
	from, to := FromReflectType(src.Type()), FromReflectType(dst)

	overflow := func() (reflect.Value, error) {
		return reflect.Value{}, fmt.Errorf("%w: %v overflows %v", ErrConversion, src.Interface(), dst)
	}

	switch {
	case to.IsSigned() || to == KindDuration:
		var i int64
		switch {
		case from.IsSigned() || from == KindDuration:
			i = src.Int()
		case from.IsUnsigned():
			if src.Uint() > math.MaxInt64 {
				return overflow()
			}
			i = int64(src.Uint())
		default:
			f, ok := roundFloat(src.Float())
			if !ok || !utils.IsInRange(math.MinInt64, f, math.MaxInt64) || f == math.MaxInt64 {
				return overflow()
			}
			i = int64(f)
		}

		if res.OverflowInt(i) {
			return overflow()
		}
		res.SetInt(i)
	case to.IsUnsigned():
		var u uint64
		switch {
		case from.IsSigned() || from == KindDuration:
			if src.Int() < 0 {
				return overflow()
			}
			u = uint64(src.Int())
		case from.IsUnsigned():
			u = src.Uint()
		default:
			f, ok := roundFloat(src.Float())
			if !ok || !utils.IsInRange(0, f, math.MaxUint64) || f == math.MaxUint64 {
				return overflow()
			}
			u = uint64(f)
		}

		if res.OverflowUint(u) {
			return overflow()
		}
		res.SetUint(u)
	default:
		var f float64
		switch {
		case from.IsSigned():
			f = float64(src.Int())
		case from.IsUnsigned():
			f = float64(src.Uint())
		default:
			f = src.Float()
		}

		if !math.IsInf(f, 0) && !math.IsNaN(f) && res.OverflowFloat(f) {
			return overflow()
		}
		res.SetFloat(f)
	}

	return res, nil
}

// roundFloat rounds half to even, the way integral conversions of fractional
// numbers behave elsewhere in the mapper.
func roundFloat(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return math.RoundToEven(f), true
}

func formatNumber(src reflect.Value, kind KindEnum) string {
	switch {
	case kind.IsSigned():
		return strconv.FormatInt(src.Int(), 10)
	case kind.IsUnsigned():
		return strconv.FormatUint(src.Uint(), 10)
	default:
		return strconv.FormatFloat(src.Float(), 'g', -1, kind.Bits())
	}
}

func parseNumber(s string, dst reflect.Type, kind KindEnum) (reflect.Value, error) {
	s = strings.TrimSpace(s)
	res := reflect.New(dst).Elem()

	var err error
	switch {
	case kind.IsSigned():
		var i int64
		if i, err = strconv.ParseInt(s, integerBase(s), kind.Bits()); err == nil {
			res.SetInt(i)
		}
	case kind.IsUnsigned():
		var u uint64
		if u, err = strconv.ParseUint(s, integerBase(s), kind.Bits()); err == nil {
			res.SetUint(u)
		}
	default:
		var f float64
		if f, err = strconv.ParseFloat(s, kind.Bits()); err == nil {
			res.SetFloat(f)
		}
	}

	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %q to %v: %w", ErrConversion, s, dst, err)
	}

	return res, nil
}

// integerBase is 0, letting strconv read the base, when s carries a 0x, 0o or
// 0b prefix. Anything else is decimal, so "08" stays 8.
func integerBase(s string) int {
	s = strings.TrimLeft(s, "+-")
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		return 0
	}

	return 10
}

func intToBool(src reflect.Value, kind KindEnum) (bool, error) {
	var n uint64
	if kind.IsSigned() {
		if src.Int() < 0 {
			return false, fmt.Errorf("negative number %d is not a boolean", src.Int())
		}
		n = uint64(src.Int())
	} else {
		n = src.Uint()
	}

	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("number %d is not a boolean", n)
	}
}

func boolToInt(b bool, dst reflect.Type) (reflect.Value, error) {
	var n int64
	if b {
		n = 1
	}

	return reflect.ValueOf(n).Convert(dst), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "y", "t", "1":
		return true, nil
	case "false", "no", "off", "n", "f", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", s)
	}
}

func unixTime(src reflect.Value, kind KindEnum) (time.Time, error) {
	if kind.IsSigned() {
		return time.Unix(src.Int(), 0).UTC(), nil
	}

	if src.Uint() > math.MaxInt64 {
		return time.Time{}, fmt.Errorf("timestamp %d out of range", src.Uint())
	}

	return time.Unix(int64(src.Uint()), 0).UTC(), nil
}

func secondsToDuration(seconds float64) (time.Duration, error) {
	ns, ok := roundFloat(seconds * float64(time.Second))
	if !ok || !utils.IsInRange(math.MinInt64, ns, math.MaxInt64) || ns == math.MaxInt64 {
		return 0, fmt.Errorf("%v seconds out of duration range", seconds)
	}

	return time.Duration(ns), nil
}

func toDecimal(src reflect.Value, kind KindEnum) (decimal.Decimal, error) {
	switch {
	case kind == KindString:
		return decimal.NewFromString(strings.TrimSpace(src.String()))
	case kind.IsSigned():
		return decimal.NewFromInt(src.Int()), nil
	case kind.IsUnsigned():
		return decimal.NewFromBigInt(new(big.Int).SetUint64(src.Uint()), 0), nil
	case kind.IsFloat():
		f := src.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, fmt.Errorf("%v has no decimal representation", f)
		}
		if kind == KindFloat32 {
			return decimal.NewFromFloat32(float32(f)), nil
		}
		return decimal.NewFromFloat(f), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%v has no decimal representation", kind)
	}
}

func fromDecimal(d decimal.Decimal, dst reflect.Type, kind KindEnum) (reflect.Value, error) {
	switch {
	case kind == KindString:
		return reflect.ValueOf(d.String()).Convert(dst), nil
	case kind.IsInteger():
		if !d.Equal(d.Truncate(0)) {
			return convertNumber(reflect.ValueOf(d.InexactFloat64()), dst)
		}

		bi := d.BigInt()
		if bi.IsInt64() {
			return convertNumber(reflect.ValueOf(bi.Int64()), dst)
		}
		if bi.IsUint64() {
			return convertNumber(reflect.ValueOf(bi.Uint64()), dst)
		}

		return reflect.Value{}, fmt.Errorf("%w: %v overflows %v", ErrConversion, d, dst)
	case kind.IsFloat():
		return convertNumber(reflect.ValueOf(d.InexactFloat64()), dst)
	default:
		return reflect.Value{}, notAllowed(decimalType, dst)
	}
}
