package forms

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type StateSuite struct {
	suite.Suite
}

func TestStateSuite(t *testing.T) {
	suite.Run(t, new(StateSuite))
}

func (s *StateSuite) TestLifecycle() {
	s.Run("new state starts empty for every field", func() {
		st := NewState(KindSignUp)
		for _, field := range KindSignUp.Fields() {
			s.Equal("", st.Values[field])
		}
		s.Empty(st.Errors)
	})

	s.Run("submit replaces errors wholesale", func() {
		st := NewState(KindSignIn)
		s.False(st.Submit())
		s.Len(st.Errors, 2)

		st.Values[FieldEmail] = "demo@shop.com"
		st.Values[FieldPassword] = "demo123"
		s.True(st.Submit())
		s.Empty(st.Errors)
	})

	s.Run("edit clears only the edited field's error", func() {
		st := NewState(KindSignIn)
		st.Submit()
		s.Len(st.Errors, 2)

		st.Edit(FieldEmail, "d")
		s.NotContains(st.Errors, FieldEmail)
		s.Contains(st.Errors, FieldPassword)
		s.Equal("d", st.Values[FieldEmail])
	})
}

func (s *StateSuite) TestKnowsField() {
	signIn := NewState(KindSignIn)
	s.True(signIn.KnowsField(FieldEmail))
	s.False(signIn.KnowsField(FieldName))

	signUp := NewState(KindSignUp)
	s.True(signUp.KnowsField(FieldConfirmPassword))
}

func (s *StateSuite) TestClone() {
	st := NewState(KindSignIn)
	st.Edit(FieldEmail, "ann@x.com")
	st.Submit()

	clone := st.Clone()
	clone.Edit(FieldEmail, "other@x.com")
	clone.Errors[FieldPassword] = "tampered"

	s.Equal("ann@x.com", st.Values[FieldEmail])
	s.Equal(MsgPasswordRequired, st.Errors[FieldPassword])
}
