package wrappederror_test

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secureworks/wrappederror"
)

func TestMatch(t *testing.T) {
	node := wrappederror.New(errType1, map[string]interface{}{
		"key":   "value",
		"count": 3,
		"tags":  []string{"a", "b"},
	})

	cases := []struct {
		name string
		err  error
		typ  *wrappederror.ErrorType
		data map[string]interface{}
		want bool
	}{
		{name: "no type no data", err: node, want: true},
		{name: "same type", err: node, typ: errType1, want: true},
		{name: "other type", err: node, typ: errType2, want: false},
		{name: "lookalike type", err: node, typ: wrappederror.NewType("erreur1", "Erreur 1"), want: false},
		{name: "empty data", err: node, data: map[string]interface{}{}, want: true},
		{name: "equal value", err: node, data: map[string]interface{}{"key": "value"}, want: true},
		{name: "new key", err: node, data: map[string]interface{}{"other": 1}, want: true},
		{name: "conflicting value", err: node, data: map[string]interface{}{"key": "other"}, want: false},
		{name: "conflicting value type", err: node, data: map[string]interface{}{"count": int64(3)}, want: false},
		{name: "some keys conflict", err: node, data: map[string]interface{}{"other": 1, "count": 4}, want: false},
		{name: "equal slice", err: node, data: map[string]interface{}{"tags": []string{"a", "b"}}, want: true},
		{name: "different slice", err: node, data: map[string]interface{}{"tags": []string{"a"}}, want: false},
		{name: "same type and conflict", err: node, typ: errType1, data: map[string]interface{}{"key": 1}, want: false},
		{name: "opaque error", err: io.EOF, want: false},
		{name: "wrapped node", err: fmt.Errorf("ctx: %w", node), want: false},
		{name: "nil", err: nil, want: false},
		{name: "typed nil", err: (*wrappederror.WrappedError)(nil), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wrappederror.Match(tc.err, tc.typ, tc.data))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("merges data into a matching node", func(t *testing.T) {
		err := wrappederror.New(nil, nil)
		got := wrappederror.Wrap(err, nil, map[string]interface{}{"key1": "value"})

		assert.Same(t, err, got)
		assert.Equal(t, map[string]interface{}{"key1": "value"}, err.Data())
	})

	t.Run("merges into a node of the same type", func(t *testing.T) {
		err := wrappederror.New(errType1, map[string]interface{}{"a": 1})
		got := wrappederror.Wrap(err, errType1, map[string]interface{}{"a": 1, "b": 2})

		assert.Same(t, err, got)
		assert.Equal(t, map[string]interface{}{"a": 1, "b": 2}, err.Data())
		assert.Equal(t, []error{err}, got.Errors())
	})

	t.Run("empty data adds no key", func(t *testing.T) {
		err := wrappederror.New(errType1, map[string]interface{}{"a": 1})

		assert.Same(t, err, wrappederror.Wrap(err, nil, nil))
		assert.Same(t, err, wrappederror.Wrap(err, errType1, map[string]interface{}{}))
		assert.Equal(t, map[string]interface{}{"a": 1}, err.Data())
	})

	t.Run("merging never links causes", func(t *testing.T) {
		err := wrappederror.New(errType1, nil)
		got := wrappederror.Wrap(err, nil, map[string]interface{}{
			wrappederror.KeyOriginalError: io.EOF,
			"key":                         "value",
		})

		assert.Same(t, err, got)
		assert.Nil(t, err.Cause())
		assert.Equal(t, map[string]interface{}{"key": "value"}, err.Data())
	})

	t.Run("creates a node on conflicting data", func(t *testing.T) {
		error1 := wrappederror.New(errType1, map[string]interface{}{"key": "value1"})
		error2 := wrappederror.Wrap(error1, errType1, map[string]interface{}{"key": "value2"})

		require.NotSame(t, error1, error2)
		assert.Equal(t, map[string]interface{}{
			"key":                         "value2",
			wrappederror.KeyOriginalError: error1,
		}, error2.Data())
		assert.Equal(t, map[string]interface{}{"key": "value1"}, error1.Data())
	})

	t.Run("creates a node on another type", func(t *testing.T) {
		error1 := wrappederror.New(errType1, nil)
		error2 := wrappederror.Wrap(error1, errType2, nil)

		require.NotSame(t, error1, error2)
		assert.Same(t, errType2, error2.Type())
		assert.Same(t, error1, error2.Cause())
	})

	t.Run("wraps an opaque error", func(t *testing.T) {
		native := errors.New("any error")
		err := wrappederror.Wrap(native, nil, nil)

		assert.True(t, err.Is(wrappederror.UndefinedError))
		assert.Equal(t, native, err.Data()[wrappederror.KeyOriginalError])
		assert.Equal(t, []error{native}, err.Causes())
		assert.Equal(t, []error{native}, err.Unwrap())
		assert.True(t, errors.Is(err, native))
	})

	t.Run("wraps nothing", func(t *testing.T) {
		err := wrappederror.Wrap(nil, errType1, map[string]interface{}{"k": "v"})

		assert.True(t, err.Is(errType1))
		assert.Nil(t, err.Cause())
		assert.Equal(t, map[string]interface{}{"k": "v"}, err.Data())
		assert.Equal(t, []error{err}, err.Errors())

		typedNil := wrappederror.Wrap((*wrappederror.WrappedError)(nil), errType1, nil)
		assert.Nil(t, typedNil.Cause())
	})

	t.Run("invalid type drops the cause", func(t *testing.T) {
		bad := &wrappederror.ErrorType{Name: "bad"}
		err := wrappederror.Wrap(io.EOF, bad, map[string]interface{}{"k": "v"})

		assert.True(t, err.Is(wrappederror.InvalidTypeDefinition))
		assert.Equal(t, map[string]interface{}{wrappederror.KeyGivenType: bad}, err.Data())
		assert.Nil(t, err.Cause())
	})

	t.Run("records the stack of the wrapping call", func(t *testing.T) {
		err := wrappederror.Wrap(io.EOF, errType1, nil)
		function, _, _ := err.Frames()[0].Location()
		assert.Regexp(t, `wrappederror_test\.TestWrap\.func\d+$`, function)
	})
}

func TestWrapNew(t *testing.T) {
	t.Run("never merges", func(t *testing.T) {
		err := wrappederror.New(errType1, map[string]interface{}{"a": 1})
		got := wrappederror.WrapNew(err, errType1, map[string]interface{}{"b": 2})

		require.NotSame(t, err, got)
		assert.Same(t, err, got.Cause())
		assert.Equal(t, map[string]interface{}{"a": 1}, err.Data())
		assert.Equal(t, map[string]interface{}{
			"b":                           2,
			wrappederror.KeyOriginalError: err,
		}, got.Data())
	})

	t.Run("wraps nothing", func(t *testing.T) {
		got := wrappederror.WrapNew(nil, errType1, nil)
		assert.Nil(t, got.Cause())
		assert.Equal(t, []error{got}, got.Errors())
	})

	t.Run("invalid type drops the cause", func(t *testing.T) {
		got := wrappederror.WrapNew(io.EOF, &wrappederror.ErrorType{}, nil)
		assert.True(t, got.Is(wrappederror.InvalidTypeDefinition))
		assert.Nil(t, got.Cause())
	})

	t.Run("records the stack of the wrapping call", func(t *testing.T) {
		got := wrappederror.WrapNew(io.EOF, errType1, nil)
		function, _, _ := got.Frames()[0].Location()
		assert.Regexp(t, `wrappederror_test\.TestWrapNew\.func\d+$`, function)
	})

	t.Run("shared cause across goroutines", func(t *testing.T) {
		shared := wrappederror.New(errType1, nil)

		var wg sync.WaitGroup
		nodes := make([]*wrappederror.WrappedError, 16)
		for i := range nodes {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				nodes[i] = wrappederror.WrapNew(shared, errType1, map[string]interface{}{"i": i})
			}()
		}
		wg.Wait()

		assert.Empty(t, shared.Data())
		for i, n := range nodes {
			assert.Equal(t, i, n.Data()["i"])
			assert.Same(t, shared, n.Cause())
		}
	})
}

func TestWrapMulti(t *testing.T) {
	t.Run("always creates a node", func(t *testing.T) {
		error1 := errors.New("error 1")
		error2 := wrappederror.New(errType2, nil)
		err := wrappederror.WrapMulti([]error{error1, error2}, errType3, nil)

		assert.True(t, err.Is(errType3))
		assert.NotSame(t, error2, err)
		assert.Equal(t, []error{error1, error2}, err.Data()[wrappederror.KeyOriginalErrors])
		assert.Nil(t, err.Cause())
		assert.Equal(t, []error{error1, error2}, err.Causes())

		again := wrappederror.WrapMulti([]error{err}, errType3, nil)
		assert.NotSame(t, err, again)
	})

	t.Run("holds data", func(t *testing.T) {
		err := wrappederror.WrapMulti([]error{io.EOF}, errType1, map[string]interface{}{"batch": 7})
		assert.Equal(t, map[string]interface{}{
			"batch":                        7,
			wrappederror.KeyOriginalErrors: []error{io.EOF},
		}, err.Data())
	})

	t.Run("drops nil errors", func(t *testing.T) {
		err := wrappederror.WrapMulti(
			[]error{nil, io.EOF, (*wrappederror.WrappedError)(nil), io.ErrUnexpectedEOF}, errType1, nil)
		assert.Equal(t, []error{io.EOF, io.ErrUnexpectedEOF}, err.Causes())
	})

	t.Run("copies the causes", func(t *testing.T) {
		errs := []error{io.EOF, io.ErrUnexpectedEOF}
		err := wrappederror.WrapMulti(errs, errType1, nil)
		errs[0] = io.ErrClosedPipe

		assert.Equal(t, []error{io.EOF, io.ErrUnexpectedEOF}, err.Causes())
		err.Causes()[1] = io.ErrClosedPipe
		assert.Equal(t, []error{io.EOF, io.ErrUnexpectedEOF}, err.Causes())
	})

	t.Run("no causes", func(t *testing.T) {
		err := wrappederror.WrapMulti(nil, errType1, nil)
		assert.Equal(t, []error{}, err.Data()[wrappederror.KeyOriginalErrors])
		assert.Equal(t, []error{err}, err.Errors())
	})

	t.Run("invalid type", func(t *testing.T) {
		err := wrappederror.WrapMulti([]error{io.EOF}, &wrappederror.ErrorType{}, nil)
		assert.True(t, err.Is(wrappederror.InvalidTypeDefinition))
		assert.Empty(t, err.Causes())
	})
}

func TestWrapErrors(t *testing.T) {
	e1 := errors.New("err 1")
	e2 := wrappederror.New(errType2, nil)
	e3 := errors.New("err 3")

	t.Run("splits a go-multierror", func(t *testing.T) {
		var merr *multierror.Error
		merr = multierror.Append(merr, e1)
		merr = multierror.Append(merr, e2)

		err := wrappederror.WrapErrors(merr, errType3, nil)
		assert.Equal(t, []error{e1, e2}, err.Causes())
		assert.Equal(t, []error{e1, e2, err}, err.Errors())
	})

	t.Run("splits a joined error", func(t *testing.T) {
		err := wrappederror.WrapErrors(wrappederror.Join(e1, nil, e2), errType3, nil)
		assert.Equal(t, []error{e1, e2}, err.Causes())
	})

	t.Run("splits behind single wrappers", func(t *testing.T) {
		joined := fmt.Errorf("ctx: %w", errors.Join(e1, e2))
		err := wrappederror.WrapErrors(joined, errType3, nil)
		assert.Equal(t, []error{e1, e2}, err.Causes())
	})

	t.Run("flattens nested aggregates", func(t *testing.T) {
		nested := errors.Join(e1, multierror.Append(nil, e2, e3))
		err := wrappederror.WrapErrors(nested, errType3, nil)
		assert.Equal(t, []error{e1, e2, e3}, err.Causes())
	})

	t.Run("does not split nodes", func(t *testing.T) {
		multi := wrappederror.WrapMulti([]error{e1, e3}, errType1, nil)
		err := wrappederror.WrapErrors(multi, errType3, nil)

		assert.Same(t, multi, err.Cause())
		assert.Equal(t, []error{e1, e3, multi, err}, err.Errors())
	})

	t.Run("single error becomes the cause", func(t *testing.T) {
		err := wrappederror.WrapErrors(e1, errType1, nil)
		assert.Same(t, e1, err.Cause())
	})

	t.Run("never merges", func(t *testing.T) {
		err := wrappederror.WrapErrors(e2, errType2, nil)
		assert.NotSame(t, e2, err)
		assert.Same(t, e2, err.Cause())
	})

	t.Run("nil", func(t *testing.T) {
		err := wrappederror.WrapErrors(nil, errType1, nil)
		assert.Empty(t, err.Causes())
		assert.Equal(t, []error{err}, err.Errors())
	})
}

func TestErrorsFrom(t *testing.T) {
	e1 := errors.New("err 1")
	e2 := errors.New("err 2")

	assert.Nil(t, wrappederror.ErrorsFrom(nil))
	assert.Equal(t, []error{e1}, wrappederror.ErrorsFrom(e1))
	assert.Equal(t, []error{e1, e2}, wrappederror.ErrorsFrom(errors.Join(e1, e2)))
	assert.Equal(t, []error{e1, e2}, wrappederror.ErrorsFrom(fmt.Errorf("%w and %w", e1, e2)))
	assert.Equal(t, []error{e1, e2}, wrappederror.ErrorsFrom(multierror.Append(e1, e2)))
	assert.Equal(t, []error{e1, e2}, wrappederror.ErrorsFrom(&errorsType{errs: []error{e1, nil, e2}}))
	assert.Empty(t, wrappederror.ErrorsFrom(&errorsType{}))

	node := wrappederror.WrapMulti([]error{e1, e2}, errType1, nil)
	assert.Equal(t, []error{node}, wrappederror.ErrorsFrom(node))
}

// errorsType aggregates errors the way uber-go/multierr does.
type errorsType struct {
	errs []error
}

func (m *errorsType) Error() string   { return "errors" }
func (m *errorsType) Errors() []error { return m.errs }

func FuzzWrapMerge(f *testing.F) {
	f.Add("k", "v", "v")
	f.Add("k", "v", "w")
	f.Add("", "", "x")
	f.Fuzz(func(t *testing.T, key, have, want string) {
		if key == wrappederror.KeyOriginalError || key == wrappederror.KeyOriginalErrors {
			t.Skip("linkage keys are never stored")
		}
		err :=wrappederror.New(errType1, map[string]interface{}{key: have})
		data := map[string]interface{}{key: want}

		matched := wrappederror.Match(err, errType1, data)
		got := wrappederror.Wrap(err, errType1, data)

		if have == want {
			if !matched || got != err {
				t.Fatalf("equal values must merge: %q", key)
			}
			return
		}
		if matched || got == err {
			t.Fatalf("conflicting values must not merge: %q=%q vs %q", key, have, want)
		}
		if err.Data()[key] != have || got.Data()[key] != want {
			t.Fatalf("values leaked across nodes")
		}
		if got.Cause() != error(err) {
			t.Fatalf("new node must wrap the original")
		}
	})
}
