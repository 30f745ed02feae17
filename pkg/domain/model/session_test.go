package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
)

func TestSessionSummary(t *testing.T) {
	t.Run("summary is write-once", func(t *testing.T) {
		s := model.NewSession()
		gt.Bool(t, s.HasSummary()).False()

		s.SetSummary("first")
		gt.Bool(t, s.HasSummary()).True()
		gt.Value(t, s.Summary()).Equal("first")

		s.SetSummary("second")
		gt.Value(t, s.Summary()).Equal("first")
	})

	t.Run("empty summary still counts as set", func(t *testing.T) {
		s := model.NewSession()
		s.SetSummary("")
		gt.Bool(t, s.HasSummary()).True()
	})
}

func TestSessionExchanges(t *testing.T) {
	t.Run("indices follow append order", func(t *testing.T) {
		s := model.NewSession()

		first := s.AppendExchange("q1", "r1")
		second := s.AppendExchange("q2", "r2")

		gt.Number(t, first.Index).Equal(0)
		gt.Number(t, second.Index).Equal(1)

		log := s.Exchanges()
		gt.Number(t, len(log)).Equal(2)
		gt.Value(t, log[0].Query).Equal("q1")
		gt.Value(t, log[1].Response).Equal("r2")
	})

	t.Run("Exchanges returns a copy", func(t *testing.T) {
		s := model.NewSession()
		s.AppendExchange("q", "r")

		log := s.Exchanges()
		log[0].Query = "tampered"

		gt.Value(t, s.Exchanges()[0].Query).Equal("q")
	})

	t.Run("new sessions have distinct IDs", func(t *testing.T) {
		gt.Value(t, model.NewSession().ID).NotEqual(model.NewSession().ID)
	})
}
