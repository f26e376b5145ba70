package funnylog2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepin-autotest/funnylog2"
)

func desc(name, doc, params string) *funnylog2.Descriptor {
	return &funnylog2.Descriptor{
		Name:   name,
		Doc:    doc,
		Params: funnylog2.ParseParams(params),
	}
}

func TestBindParams(t *testing.T) {
	t.Parallel()

	t.Run("positional values", func(t *testing.T) {
		t.Parallel()
		got := funnylog2.BindParams(desc("Add", "", "a,b"), []any{2, 3}, nil)
		assert.Equal(t, map[string]string{"a": "2", "b": "3"}, got)
	})

	t.Run("receiver excluded", func(t *testing.T) {
		t.Parallel()
		got := funnylog2.BindParams(desc("Open", "", "self,page"), []any{"display"}, nil)
		assert.Equal(t, map[string]string{"page": "display"}, got)
	})

	t.Run("class receiver excluded", func(t *testing.T) {
		t.Parallel()
		got := funnylog2.BindParams(desc("FromEnv", "", "cls,name"), []any{"HOME"}, nil)
		assert.Equal(t, map[string]string{"name": "HOME"}, got)
	})

	t.Run("keyword beats positional", func(t *testing.T) {
		t.Parallel()
		got := funnylog2.BindParams(desc("Add", "", "a,b"), []any{2, 3}, map[string]any{"b": 7})
		assert.Equal(t, map[string]string{"a": "2", "b": "7"}, got)
	})

	t.Run("default fills the gap", func(t *testing.T) {
		t.Parallel()
		got := funnylog2.BindParams(desc("Wait", "", "self,timeout=30"), nil, nil)
		assert.Equal(t, map[string]string{"timeout": "30"}, got)
	})

	t.Run("positional beats default", func(t *testing.T) {
		t.Parallel()
		got := funnylog2.BindParams(desc("Wait", "", "self,timeout=30"), []any{5}, nil)
		assert.Equal(t, map[string]string{"timeout": "5"}, got)
	})

	t.Run("unresolved binds empty", func(t *testing.T) {
		t.Parallel()
		got := funnylog2.BindParams(desc("Open", "", "x"), nil, nil)
		assert.Equal(t, map[string]string{"x": ""}, got)
	})

	t.Run("string values lose surrounding quotes", func(t *testing.T) {
		t.Parallel()
		got := funnylog2.BindParams(desc("Open", "", "page"), []any{"'display'"}, nil)
		assert.Equal(t, map[string]string{"page": "display"}, got)
	})

	t.Run("nil descriptor yields no bindings", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, funnylog2.BindParams(nil, []any{1}, nil))
	})
}

func TestRenderTitle(t *testing.T) {
	t.Parallel()

	t.Run("substitutes placeholders", func(t *testing.T) {
		t.Parallel()
		d := desc("Add", "Adds {{a}} and {{b}}", "a,b")
		got := funnylog2.RenderTitle(d, funnylog2.BindParams(d, []any{2, 3}, nil))
		assert.Equal(t, "Adds 2 and 3", got)
	})

	t.Run("no documentation falls back to bare name", func(t *testing.T) {
		t.Parallel()
		d := desc("Close", "", "self")
		assert.Equal(t, "Close", funnylog2.RenderTitle(d, nil))
	})

	t.Run("annotation markers end the title", func(t *testing.T) {
		t.Parallel()
		d := desc("Open", "Open the {{page}} page\n:param page: target page\n:return: error", "page")
		got := funnylog2.RenderTitle(d, funnylog2.BindParams(d, []any{"display"}, nil))
		assert.Equal(t, "Open the display page", got)
	})

	t.Run("at-sign markers end the title", func(t *testing.T) {
		t.Parallel()
		d := desc("Open", "Open the page\n@param page: target page", "page")
		assert.Equal(t, "Open the page", funnylog2.RenderTitle(d, nil))
	})

	t.Run("multi-line titles are joined with lines trimmed", func(t *testing.T) {
		t.Parallel()
		d := desc("Open", "Open the {{page}} page of\n        the control center", "page")
		got := funnylog2.RenderTitle(d, funnylog2.BindParams(d, []any{"display"}, nil))
		assert.Equal(t, "Open the display page ofthe control center", got)
	})

	t.Run("unresolved placeholder becomes empty", func(t *testing.T) {
		t.Parallel()
		d := desc("Open", "Open {{x}} now", "x")
		got := funnylog2.RenderTitle(d, funnylog2.BindParams(d, nil, nil))
		assert.Equal(t, "Open  now", got)
	})

	t.Run("undeclared placeholder is left alone", func(t *testing.T) {
		t.Parallel()
		d := desc("Open", "Open {{mystery}}", "page")
		got := funnylog2.RenderTitle(d, funnylog2.BindParams(d, []any{"display"}, nil))
		assert.Equal(t, "Open {{mystery}}", got)
	})

	t.Run("nil descriptor renders empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", funnylog2.RenderTitle(nil, nil))
	})
}
