package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseModel_BeforeCreate(t *testing.T) {
	var m BaseModel
	require.NoError(t, m.BeforeCreate(nil))

	_, err := uuid.Parse(m.ID)
	assert.NoError(t, err)

	explicit := BaseModel{ID: "fixed-id"}
	require.NoError(t, explicit.BeforeCreate(nil))
	assert.Equal(t, "fixed-id", explicit.ID)
}

func TestStringers(t *testing.T) {
	headline := "Senior Go developer"
	bizName := "Acme LLC"

	assert.Equal(t, "Design", Category{Name: "Design"}.String())
	assert.Equal(t, "Logo design", Specialty{Name: "Logo design"}.String())
	assert.Equal(t, "English", LangType{Name: "English"}.String())
	assert.Equal(t, "Jane Doe", User{FirstName: "Jane", LastName: "Doe"}.String())
	assert.Equal(t, headline, Profile{Headline: &headline}.String())
	assert.Equal(t, "", Profile{}.String())
	assert.Equal(t, bizName, Business{Biz: BusinessTypeCorporate, BizName: &bizName}.String())
	assert.Equal(t, "Individual", Business{Biz: BusinessTypeIndividual}.String())
}

func TestBusinessType_IsValid(t *testing.T) {
	for _, bt := range AllBusinessTypes() {
		assert.True(t, bt.IsValid(), bt)
	}
	assert.False(t, BusinessType("individual").IsValid())
	assert.False(t, BusinessType("").IsValid())
}

func TestAll_ParentsBeforeChildren(t *testing.T) {
	order := make(map[string]int)
	for i, m := range All() {
		switch m.(type) {
		case *Category:
			order["category"] = i
		case *Specialty:
			order["specialty"] = i
		case *User:
			order["user"] = i
		case *Profile:
			order["profile"] = i
		case *Point:
			order["point"] = i
		case *Transaction:
			order["transaction"] = i
		}
	}

	assert.Less(t, order["category"], order["specialty"])
	assert.Less(t, order["specialty"], order["profile"])
	assert.Less(t, order["user"], order["profile"])
	assert.Less(t, order["point"], order["transaction"])
	assert.Len(t, All(), 14)
}
