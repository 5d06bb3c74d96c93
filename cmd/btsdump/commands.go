package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/arloliu/bts/format"
	"github.com/arloliu/bts/internal/hash"
	"github.com/arloliu/bts/internal/logs"
	"github.com/arloliu/bts/record"
	"github.com/arloliu/bts/section"
	"github.com/arloliu/bts/storage"
)

var errMissingFile = errors.New("missing file argument")

func fileArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() < 1 {
		return "", errMissingFile
	}

	return expandPath(ctx.Args().First())
}

func (wrapper *Wrapper) explain(ctx *cli.Context) error {
	path, err := fileArg(ctx)
	if err != nil {
		return err
	}

	region, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer region.Close()

	e, err := section.Explain(region.Bytes())
	if err != nil {
		return err
	}

	out := ctx.App.Writer
	fmt.Fprintf(out, "file:           %s (%d bytes)\n", path, region.Len())
	fmt.Fprint(out, e.String())

	_, decodeErr := record.NewReader(region.Bytes())
	switch {
	case decodeErr == nil:
		fmt.Fprintf(out, "record size:    %d\n", e.ExpectedSize())
	default:
		fmt.Fprintf(out, "decode error:   %v\n", decodeErr)
		logs.Named("btsdump").Warn("record does not decode",
			zap.String(logs.FieldPath, path), zap.Error(decodeErr))
		if ctx.Bool(flagStrict.Name) {
			return decodeErr
		}
	}

	return nil
}

func (wrapper *Wrapper) read(ctx *cli.Context) error {
	path, err := fileArg(ctx)
	if err != nil {
		return err
	}

	f, err := record.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if f.Len() == 0 {
		return nil
	}

	from := ctx.Int(flagFrom.Name)
	upto := ctx.Int(flagUpto.Name)
	if upto < 0 {
		upto = f.Len() - 1
	}
	if limit := wrapper.intSetting(ctx, flagLimit.Name, keyReadLimit); limit > 0 && upto-from+1 > limit {
		upto = from + limit - 1
	}

	as, err := format.LookupDType(strings.ToUpper(wrapper.stringSetting(ctx, flagAs.Name, keyReadAs)))
	if err != nil {
		return err
	}
	raw := wrapper.boolSetting(ctx, flagRaw.Name, keyReadRaw)

	switch as {
	case format.DTypeByte:
		return printSamples[int8](ctx.App.Writer, f.Reader, from, upto, raw)
	case format.DTypeShort:
		return printSamples[int16](ctx.App.Writer, f.Reader, from, upto, raw)
	case format.DTypeInt:
		return printSamples[int32](ctx.App.Writer, f.Reader, from, upto, raw)
	case format.DTypeLong:
		return printSamples[int64](ctx.App.Writer, f.Reader, from, upto, raw)
	case format.DTypeFloat:
		return printSamples[float32](ctx.App.Writer, f.Reader, from, upto, raw)
	case format.DTypeDouble:
		return printSamples[float64](ctx.App.Writer, f.Reader, from, upto, raw)
	default:
		return fmt.Errorf("cannot print samples as %s", as)
	}
}

// printSamples writes one "index<TAB>timestamp<TAB>value" line per sample.
func printSamples[T format.Sample](w io.Writer, r *record.Reader, from, upto int, raw bool) error {
	var (
		values []T
		err    error
	)
	if raw {
		values, err = record.ReadRaw[T](r, from, upto)
	} else {
		values, err = record.ReadScaled[T](r, from, upto)
	}
	if err != nil {
		return err
	}

	stamps, err := timestampStrings(r, from, upto)
	if err != nil {
		return err
	}

	for k, v := range values {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", from+k, stamps[k], format.ValueOf(v)); err != nil {
			return err
		}
	}

	return nil
}

func timestampStrings(r *record.Reader, from, upto int) ([]string, error) {
	var out []string
	switch r.Header().Timebase.DType() {
	case format.DTypeLong:
		ts, err := record.Timestamps[int64](r, from, upto)
		if err != nil {
			return nil, err
		}
		for _, t := range ts {
			out = append(out, format.Long(t).String())
		}
	default:
		ts, err := record.Timestamps[float64](r, from, upto)
		if err != nil {
			return nil, err
		}
		for _, t := range ts {
			out = append(out, format.Double(t).String())
		}
	}

	return out, nil
}

func (wrapper *Wrapper) timebase(ctx *cli.Context) error {
	path, err := fileArg(ctx)
	if err != nil {
		return err
	}

	f, err := record.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lower, upper := ctx.String(flagLower.Name), ctx.String(flagUpper.Name)

	var (
		from, upto int
		ok         bool
	)
	switch f.Header().Timebase.DType() {
	case format.DTypeLong:
		lo, hi, perr := parseBounds(lower, upper, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		})
		if perr != nil {
			return perr
		}
		from, upto, ok, err = record.IndexRange(f.Reader, lo, hi)
	default:
		lo, hi, perr := parseBounds(lower, upper, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		})
		if perr != nil {
			return perr
		}
		from, upto, ok, err = record.IndexRange(f.Reader, lo, hi)
	}
	if err != nil {
		return err
	}

	if !ok {
		fmt.Fprintln(ctx.App.Writer, "empty")
		return nil
	}
	fmt.Fprintf(ctx.App.Writer, "from=%d upto=%d count=%d\n", from, upto, upto-from+1)

	return nil
}

func parseBounds[T any](lower, upper string, parse func(string) (T, error)) (T, T, error) {
	var zero T
	lo, err := parse(lower)
	if err != nil {
		return zero, zero, fmt.Errorf("--lower: %w", err)
	}
	hi, err := parse(upper)
	if err != nil {
		return zero, zero, fmt.Errorf("--upper: %w", err)
	}

	return lo, hi, nil
}

func (wrapper *Wrapper) digest(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingFile
	}

	for _, arg := range ctx.Args().Slice() {
		path, err := expandPath(arg)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%016x  %s\n", hash.Digest(data), arg)
	}

	return nil
}

// Flags win over the config file, which wins over the built-in default.

func (wrapper *Wrapper) stringSetting(ctx *cli.Context, flag, key string) string {
	if ctx.IsSet(flag) {
		return ctx.String(flag)
	}

	return wrapper.config.GetString(key)
}

func (wrapper *Wrapper) intSetting(ctx *cli.Context, flag, key string) int {
	if ctx.IsSet(flag) {
		return ctx.Int(flag)
	}

	return wrapper.config.GetInt(key)
}

func (wrapper *Wrapper) boolSetting(ctx *cli.Context, flag, key string) bool {
	if ctx.IsSet(flag) {
		return ctx.Bool(flag)
	}

	return wrapper.config.GetBool(key)
}
