package user

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindario/barrios/core"
)

func newValidator() (*validator.Validate, func(error) map[string]string) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	fieldErrs := func(err error) map[string]string {
		out := make(map[string]string)
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			for _, vErr := range vErrs {
				out[vErr.Field()] = vErr.Translate(translator)
			}
		}
		return out
	}
	return validate, fieldErrs
}

func TestPasswordPolicy(t *testing.T) {
	validate, fieldErrs := newValidator()

	tests := []struct {
		name    string
		pwd     string
		wantErr string
	}{
		{name: "valid", pwd: "Vecin0s!Norte"},
		{name: "too short", pwd: "Ab1!", wantErr: pwdMinLenText},
		{name: "whitespace", pwd: "Vecin0s Norte", wantErr: pwdNoSpaceText},
		{name: "all numeric", pwd: "8675309123", wantErr: pwdNotAllNumText},
		{name: "similar to nickname", pwd: "vecina_del_4", wantErr: pwdAttrSimText},
		{name: "common", pwd: "Password123", wantErr: pwdNoCommonText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := NewUser{
				Email:    "vecina@barrios.es",
				Password: tt.pwd,
				Name:     "Lucia",
				Surname:  "Gomez",
				Phone:    "600000000",
				Nickname: "vecina_del_3",
			}
			err := validate.Struct(nu)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, map[string]string{"password": tt.wantErr}, fieldErrs(err))
		})
	}
}

func TestUpdateUser_blankPasswordSkipsPolicy(t *testing.T) {
	validate, _ := newValidator()
	assert.NoError(t, validate.Struct(UpdateUser{Nickname: "vecina"}))
	assert.Error(t, validate.Struct(UpdateUser{Nickname: "vecina", Password: "short"}))
}

func TestCustomTags(t *testing.T) {
	validate, fieldErrs := newValidator()

	err := validate.Struct(AddRef{List: "leisure", ID: "not-an-id"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"id": "id must be a valid object id"}, fieldErrs(err))

	err = validate.Struct(NewUser{
		Email: "a@b.es", Password: "Vecin0s!Norte", Name: "a", Surname: "b", Phone: "1", Nickname: "no-dash",
	})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"nickname": "only alphanumeric characters and underscores are allowed"}, fieldErrs(err))
}
