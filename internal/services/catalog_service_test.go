package services_test

import (
	"testing"

	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/utils"
	"freelance_backend/pkg/apperrors"
	"freelance_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CategorySlug(t *testing.T) {
	tx, svc := setup(t)
	name := helpers.UniqueName("Web Design")

	first, err := svc.CatalogService.CreateCategory(tx, &dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	assert.Equal(t, utils.Slugify(name), first.Slug)

	second, err := svc.CatalogService.CreateCategory(tx, &dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	assert.Equal(t, first.Slug+"-2", second.Slug)

	third, err := svc.CatalogService.CreateCategory(tx, &dto.CreateCategoryRequest{Name: "  " + name + "  "})
	require.NoError(t, err)
	assert.Equal(t, first.Slug+"-3", third.Slug)
	assert.Equal(t, name, third.Name)

	// явный slug не получает суффикс
	_, err = svc.CatalogService.CreateCategory(tx, &dto.CreateCategoryRequest{Name: "Other", Slug: first.Slug})
	assertAppError(t, err, apperrors.ErrSlugTaken)

	found, err := svc.CatalogService.GetCategoryBySlug(tx, second.Slug)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
}

func TestCatalogService_CategoryValidation(t *testing.T) {
	tx, svc := setup(t)

	_, err := svc.CatalogService.CreateCategory(tx, &dto.CreateCategoryRequest{Name: "   "})
	assertValidationError(t, err, "name")

	_, err = svc.CatalogService.CreateCategory(tx, &dto.CreateCategoryRequest{Name: "Дизайн"})
	assertValidationError(t, err, "slug")

	_, err = svc.CatalogService.CreateCategory(tx, &dto.CreateCategoryRequest{Name: "Design", Slug: "Not A Slug"})
	assertValidationError(t, err, "slug")
}

func TestCatalogService_UpdateAndDeleteCategory(t *testing.T) {
	tx, svc := setup(t)
	category, specialty := helpers.CreateCategory(t, tx, helpers.UniqueName("Writing"))

	updated, err := svc.CatalogService.UpdateCategory(tx, category.ID, &dto.UpdateCategoryRequest{Name: strPtr("Copywriting")})
	require.NoError(t, err)
	assert.Equal(t, "Copywriting", updated.Name)
	assert.Equal(t, category.Slug, updated.Slug)
	require.Len(t, updated.Specialties, 1)

	_, err = svc.CatalogService.UpdateCategory(tx, "missing", &dto.UpdateCategoryRequest{Name: strPtr("x")})
	assertAppError(t, err, apperrors.ErrCategoryNotFound)

	// специальности удаляются вместе с категорией
	require.NoError(t, svc.CatalogService.DeleteCategory(tx, category.ID))
	_, err = svc.CatalogService.GetSpecialty(tx, specialty.ID)
	assertAppError(t, err, apperrors.ErrSpecialtyNotFound)

	err = svc.CatalogService.DeleteCategory(tx, category.ID)
	assertAppError(t, err, apperrors.ErrCategoryNotFound)
}

func TestCatalogService_Specialty(t *testing.T) {
	tx, svc := setup(t)
	category, _ := helpers.CreateCategory(t, tx, helpers.UniqueName("Development"))
	other, _ := helpers.CreateCategory(t, tx, helpers.UniqueName("Marketing"))

	specialty, err := svc.CatalogService.CreateSpecialty(tx, &dto.CreateSpecialtyRequest{
		CategoryID: category.ID,
		Name:       helpers.UniqueName("Backend"),
	})
	require.NoError(t, err)
	assert.Equal(t, category.ID, specialty.CategoryID)

	list, err := svc.CatalogService.ListSpecialties(tx, category.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.CatalogService.ListSpecialties(tx, "missing")
	assertAppError(t, err, apperrors.ErrCategoryNotFound)

	// специальность без категории не создается
	_, err = svc.CatalogService.CreateSpecialty(tx, &dto.CreateSpecialtyRequest{Name: "Orphan"})
	assertValidationError(t, err, "category_id")

	_, err = svc.CatalogService.CreateSpecialty(tx, &dto.CreateSpecialtyRequest{CategoryID: "missing", Name: "Orphan"})
	assertAppError(t, err, apperrors.ErrCategoryNotFound)

	moved, err := svc.CatalogService.UpdateSpecialty(tx, specialty.ID, &dto.UpdateSpecialtyRequest{CategoryID: strPtr(other.ID)})
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.CategoryID)

	_, err = svc.CatalogService.UpdateSpecialty(tx, specialty.ID, &dto.UpdateSpecialtyRequest{CategoryID: strPtr("missing")})
	assertAppError(t, err, apperrors.ErrCategoryNotFound)

	require.NoError(t, svc.CatalogService.DeleteSpecialty(tx, specialty.ID))
	err = svc.CatalogService.DeleteSpecialty(tx, specialty.ID)
	assertAppError(t, err, apperrors.ErrSpecialtyNotFound)
}

func TestCatalogService_LangType(t *testing.T) {
	tx, svc := setup(t)
	name := helpers.UniqueName("English")

	langType, err := svc.CatalogService.CreateLangType(tx, &dto.CreateLangTypeRequest{Name: name})
	require.NoError(t, err)
	assert.Equal(t, utils.Slugify(name), langType.Slug)

	updated, err := svc.CatalogService.UpdateLangType(tx, langType.ID, &dto.UpdateLangTypeRequest{Name: strPtr("British English")})
	require.NoError(t, err)
	assert.Equal(t, "British English", updated.Name)

	all, err := svc.CatalogService.ListLangTypes(tx)
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	require.NoError(t, svc.CatalogService.DeleteLangType(tx, langType.ID))
	_, err = svc.CatalogService.GetLangType(tx, langType.ID)
	assertAppError(t, err, apperrors.ErrLangTypeNotFound)
}
