package model_test

import (
	"strings"
	"testing"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestNewPropertyKey(t *testing.T) {
	t.Run("slugifies the display name", func(t *testing.T) {
		key := string(model.NewPropertyKey("Launch Date (planned)"))
		gt.Bool(t, strings.HasPrefix(key, "launch_date_planned_")).True()
	})

	t.Run("two properties with the same name get distinct keys", func(t *testing.T) {
		a := model.NewPropertyKey("Budget")
		b := model.NewPropertyKey("Budget")
		gt.Value(t, a).NotEqual(b)
	})

	t.Run("name without usable characters falls back", func(t *testing.T) {
		key := string(model.NewPropertyKey("!!!"))
		gt.Bool(t, strings.HasPrefix(key, "property_")).True()
	})
}

func TestDuplicateKey(t *testing.T) {
	src := model.NewPropertyKey("Budget")
	dup := model.DuplicateKey(src)
	gt.Value(t, dup).NotEqual(src)
	gt.Bool(t, strings.HasPrefix(string(dup), string(src)+"_")).True()
}

func TestOrphanValues(t *testing.T) {
	def := &model.PropertyDefinition{
		Options: []model.PropertyOption{
			{Value: "draft", Label: "Draft"},
			{Value: "review", Label: "Review"},
		},
	}

	gt.Value(t, def.OrphanValues([]string{"draft", "legacy", "review", "old"})).
		Equal([]string{"legacy", "old"})
	gt.Value(t, def.OrphanValues([]string{"draft"})).Nil()
}

func TestPropertyDefinitionClone(t *testing.T) {
	def := &model.PropertyDefinition{
		ID:      "p1",
		Name:    "Stage",
		Options: []model.PropertyOption{{Value: "draft", Label: "Draft"}},
	}

	copied := def.Clone()
	copied.Options[0].Value = "changed"
	gt.Value(t, def.Options[0].Value).Equal("draft")
}
