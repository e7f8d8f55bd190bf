package services_test

import (
	"strings"
	"testing"

	"freelance_backend/internal/auth"
	"freelance_backend/internal/models"
	"freelance_backend/internal/services/dto"
	"freelance_backend/pkg/apperrors"
	"freelance_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserRequest(email string) *dto.CreateUserRequest {
	return &dto.CreateUserRequest{
		Email:     email,
		Password:  strPtr(helpers.TestPassword),
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestUserService_CreateUser(t *testing.T) {
	tx, svc := setup(t)
	email := helpers.UniqueEmail("jane")
	domainUpper := strings.Replace(email, "@test.com", "@TEST.com", 1)

	user, err := svc.UserService.CreateUser(tx, createUserRequest(domainUpper))
	require.NoError(t, err)
	assert.Equal(t, email, user.Email)
	assert.True(t, user.IsActive)
	assert.True(t, user.Status)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)
	assert.NotEqual(t, helpers.TestPassword, user.PasswordHash)

	_, ok, err := svc.UserService.CheckPassword(tx, domainUpper, helpers.TestPassword)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.UserService.CreateUser(tx, createUserRequest(email))
	assertAppError(t, err, apperrors.ErrEmailAlreadyExists)

	padded := helpers.UniqueEmail("padded")
	user, err = svc.UserService.CreateUser(tx, createUserRequest("  "+strings.Replace(padded, "@test.com", "@Test.COM", 1)+"  "))
	require.NoError(t, err)
	assert.Equal(t, padded, user.Email)
}

func TestUserService_CreateUser_PrivilegedFlags(t *testing.T) {
	tx, svc := setup(t)

	req := createUserRequest(helpers.UniqueEmail("staff"))
	req.IsStaff = boolPtr(true)
	_, err := svc.UserService.CreateUser(tx, req)
	assertAppError(t, err, apperrors.ErrPrivilegedFlags)

	req = createUserRequest(helpers.UniqueEmail("root"))
	req.IsSuperuser = boolPtr(true)
	_, err = svc.UserService.CreateUser(tx, req)
	assertAppError(t, err, apperrors.ErrPrivilegedFlags)

	// явный false допустим
	req = createUserRequest(helpers.UniqueEmail("plain"))
	req.IsStaff = boolPtr(false)
	req.IsSuperuser = boolPtr(false)
	user, err := svc.UserService.CreateUser(tx, req)
	require.NoError(t, err)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	tx, svc := setup(t)

	_, err := svc.UserService.CreateUser(tx, createUserRequest("   "))
	assertAppError(t, err, apperrors.ErrEmailRequired)

	_, err = svc.UserService.CreateUser(tx, createUserRequest("not-an-email"))
	assertValidationError(t, err, "email")

	req := createUserRequest(helpers.UniqueEmail("short"))
	req.Password = strPtr("short")
	_, err = svc.UserService.CreateUser(tx, req)
	assertValidationError(t, err, "password")

	req = createUserRequest(helpers.UniqueEmail("noname"))
	req.FirstName = " "
	_, err = svc.UserService.CreateUser(tx, req)
	assertValidationError(t, err, "first_name")
}

func TestUserService_CreateUser_WithoutPassword(t *testing.T) {
	tx, svc := setup(t)
	req := createUserRequest(helpers.UniqueEmail("nopass"))
	req.Password = nil

	user, err := svc.UserService.CreateUser(tx, req)
	require.NoError(t, err)
	assert.False(t, auth.IsUsablePassword(user.PasswordHash))

	_, ok, err := svc.UserService.CheckPassword(tx, user.Email, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserService_CreateSuperuser(t *testing.T) {
	tx, svc := setup(t)

	admin, err := svc.UserService.CreateSuperuser(tx, createUserRequest(helpers.UniqueEmail("admin")))
	require.NoError(t, err)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)
	assert.True(t, admin.IsActive)

	req := createUserRequest(helpers.UniqueEmail("admin"))
	req.IsStaff = boolPtr(false)
	_, err = svc.UserService.CreateSuperuser(tx, req)
	assertAppError(t, err, apperrors.ErrSuperuserFlags)

	req = createUserRequest(helpers.UniqueEmail("admin"))
	req.IsSuperuser = boolPtr(false)
	_, err = svc.UserService.CreateSuperuser(tx, req)
	assertAppError(t, err, apperrors.ErrSuperuserFlags)
}

func TestUserService_UpdateUser(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)
	other := newUser(t, tx)

	updated, err := svc.UserService.UpdateUser(tx, user.ID, &dto.UpdateUserRequest{
		FirstName: strPtr(" John "),
		Client:    boolPtr(true),
		Username:  strPtr("john_" + user.ID[:8]),
	})
	require.NoError(t, err)
	assert.Equal(t, "John", updated.FirstName)
	assert.True(t, updated.Client)

	_, err = svc.UserService.UpdateUser(tx, other.ID, &dto.UpdateUserRequest{Username: updated.Username})
	assertAppError(t, err, apperrors.ErrUsernameTaken)

	_, err = svc.UserService.UpdateUser(tx, user.ID, &dto.UpdateUserRequest{Email: strPtr(other.Email)})
	assertAppError(t, err, apperrors.ErrEmailAlreadyExists)

	// свой же email - не конфликт
	_, err = svc.UserService.UpdateUser(tx, user.ID, &dto.UpdateUserRequest{Email: strPtr(user.Email)})
	require.NoError(t, err)

	fresh := helpers.UniqueEmail("fresh")
	updated, err = svc.UserService.UpdateUser(tx, user.ID, &dto.UpdateUserRequest{
		Email: strPtr(" " + strings.Replace(fresh, "@test.com", "@TEST.COM", 1) + " "),
	})
	require.NoError(t, err)
	assert.Equal(t, fresh, updated.Email)

	_, err = svc.UserService.UpdateUser(tx, user.ID, &dto.UpdateUserRequest{Email: strPtr("   ")})
	assertAppError(t, err, apperrors.ErrEmailRequired)

	_, err = svc.UserService.UpdateUser(tx, "missing-user", &dto.UpdateUserRequest{FirstName: strPtr("x")})
	assertAppError(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_Passwords(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)

	err := svc.UserService.SetPassword(tx, user.ID, "short")
	assertAppError(t, err, apperrors.ErrWeakPassword)

	require.NoError(t, svc.UserService.SetPassword(tx, user.ID, "new-password-1"))

	_, ok, err := svc.UserService.CheckPassword(tx, user.Email, helpers.TestPassword)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = svc.UserService.CheckPassword(tx, user.Email, "new-password-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// деактивированный пользователь не проходит проверку
	require.NoError(t, svc.UserService.DeactivateUser(tx, user.ID))
	_, ok, err = svc.UserService.CheckPassword(tx, user.Email, "new-password-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.UserService.CheckPassword(tx, helpers.UniqueEmail("nobody"), "whatever1")
	assertAppError(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	tx, svc := setup(t)
	marker := helpers.UniqueName("Lister")

	for i := 0; i < 3; i++ {
		helpers.CreateUser(t, tx, &models.User{FirstName: marker, Freelancer: i > 0})
	}

	page, err := svc.UserService.ListUsers(tx, &dto.ListUsersRequest{
		Search:            marker,
		PaginationRequest: dto.PaginationRequest{Page: 1, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Data, 2)
	assert.True(t, page.HasMore)

	page, err = svc.UserService.ListUsers(tx, &dto.ListUsersRequest{Search: marker, Freelancer: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestUserService_DeleteUser_Cascades(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)
	_, specialty := helpers.CreateCategory(t, tx, helpers.UniqueName("Design"))
	langType := helpers.CreateLangType(t, tx, "German")

	profile, err := svc.ProfileService.CreateProfile(tx, user.ID, &dto.CreateProfileRequest{SpecialtyIDs: []string{specialty.ID}})
	require.NoError(t, err)
	_, err = svc.ProfileService.AddCert(tx, user.ID, &dto.CreateCertRequest{Name: "Cert", Date: "2023-01-01"})
	require.NoError(t, err)
	_, err = svc.ProfileService.AddEmployment(tx, user.ID, &dto.CreateEmploymentRequest{
		Name: "Acme", Position: "Designer", StartDate: "2020-01-01", EndDate: "2021-01-01",
	})
	require.NoError(t, err)
	lang, err := svc.ProfileService.AddLang(tx, user.ID, &dto.LangRequest{LangTypeIDs: []string{langType.ID}})
	require.NoError(t, err)
	_, err = svc.VerificationService.SubmitTax(tx, user.ID, &dto.TaxRequest{TIN: "123456789", Signature: "sig"})
	require.NoError(t, err)
	_, err = svc.VerificationService.SubmitIdentity(tx, user.ID, &dto.IdentityRequest{
		IDCard: "scan.png", Country: "KZ", State: "Almaty", Address: "Main st",
	})
	require.NoError(t, err)
	_, err = svc.VerificationService.SetBusiness(tx, user.ID, &dto.BusinessRequest{})
	require.NoError(t, err)
	_, err = svc.VerificationService.GetOrCreateBadge(tx, user.ID)
	require.NoError(t, err)
	point, err := svc.PointService.OpenPoint(tx, user.ID)
	require.NoError(t, err)
	_, err = svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: 10})
	require.NoError(t, err)

	aggregate, err := svc.UserService.GetUserAggregate(tx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, aggregate.Profile)
	require.NotNil(t, aggregate.Point)
	assert.Len(t, aggregate.Certs, 1)
	assert.Len(t, aggregate.Langs, 1)

	require.NoError(t, svc.UserService.DeleteUser(tx, user.ID))

	for _, table := range []string{
		"profiles", "certs", "employments", "langs", "taxes", "identities", "businesses", "badges", "points",
	} {
		assert.Equal(t, int64(0), helpers.CountRows(t, tx, table, "user_id = ?", user.ID), table)
	}
	assert.Equal(t, int64(0), helpers.CountRows(t, tx, "transactions", "point_id = ?", point.ID))
	assert.Equal(t, int64(0), helpers.CountRows(t, tx, "profile_specialties", "profile_id = ?", profile.ID))
	assert.Equal(t, int64(0), helpers.CountRows(t, tx, "lang_lang_types", "lang_id = ?", lang.ID))

	// справочники не затронуты
	assert.Equal(t, int64(1), helpers.CountRows(t, tx, "specialties", "id = ?", specialty.ID))

	err = svc.UserService.DeleteUser(tx, user.ID)
	assertAppError(t, err, apperrors.ErrUserNotFound)
}
