package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

func ptr[T any](v T) *T { return &v }

func schoolRequest() model.LeadRequest {
	return model.LeadRequest{
		Type:       model.LeadTypeSchool,
		Language:   model.LanguageKZ,
		MainIntent: model.IntentNoLicense,
		BotUser:    model.BotUserInfo{TelegramUserID: 42, Username: "aidar"},
		Contact:    model.Contact{Name: "  Айдар ", Phone: "+77011234567", WhatsApp: "+77011234567"},
		Payload: model.LeadPayload{
			CityID:         ptr(int64(1)),
			CategoryID:     ptr(int64(2)),
			Gearbox:        ptr(model.GearboxAT),
			SchoolID:       ptr(int64(7)),
			TariffID:       ptr(int64(70)),
			TariffName:     "Стандарт",
			TariffPriceKZT: ptr(150000),
			TestsPriceKZT:  ptr(5000),
		},
	}
}

func TestValidateLeadRequest(t *testing.T) {
	require.NoError(t, ValidateLeadRequest(schoolRequest()))

	cases := map[string]func(r *model.LeadRequest){
		"unknown type":     func(r *model.LeadRequest) { r.Type = "CAR" },
		"unknown language": func(r *model.LeadRequest) { r.Language = "EN" },
		"short name":       func(r *model.LeadRequest) { r.Contact.Name = " А " },
		"missing phone":    func(r *model.LeadRequest) { r.Contact.Phone = "  " },
		"bad iin":          func(r *model.LeadRequest) { r.Contact.IIN = "12345" },
		"bad gearbox":      func(r *model.LeadRequest) { r.Payload.Gearbox = ptr(model.Gearbox("CVT")) },
		"missing school":   func(r *model.LeadRequest) { r.Payload.SchoolID = nil },
		"missing instructor": func(r *model.LeadRequest) {
			r.Type = model.LeadTypeInstructor
			r.Payload.InstructorID = nil
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := schoolRequest()
			mutate(&req)
			assert.ErrorIs(t, ValidateLeadRequest(req), ErrValidation)
		})
	}
}

func TestValidateLeadRequest_TestsNeedNoProvider(t *testing.T) {
	req := model.LeadRequest{
		Type:    model.LeadTypeTests,
		Contact: model.Contact{Name: "Дана", Phone: "+77010000000", IIN: "990101300123"},
	}
	assert.NoError(t, ValidateLeadRequest(req))
}

func TestBuildLead_School(t *testing.T) {
	lead := BuildLead(schoolRequest())

	assert.NotEqual(t, uuid.Nil, lead.ID)
	assert.Equal(t, model.LeadStatusNew, lead.Status)
	assert.Equal(t, model.LanguageKZ, lead.Language)
	assert.Equal(t, "Айдар", lead.Name)
	assert.Equal(t, "telegram_bot", lead.Source)
	assert.Equal(t, int64(7), *lead.SchoolID)
	assert.Equal(t, "Стандарт", lead.TariffName)
	require.NotNil(t, lead.PriceKZT)
	assert.Equal(t, 150000, *lead.PriceKZT)
	assert.Nil(t, lead.InstructorID)
}

func TestBuildLead_PriceByType(t *testing.T) {
	req := schoolRequest()
	req.Type = model.LeadTypeInstructor
	req.Payload.InstructorID = ptr(int64(3))
	req.Payload.InstructorTariffID = ptr(int64(30))
	req.Payload.InstructorTariffPriceKZT = ptr(12000)
	req.Payload.PreferredGender = ptr(model.GenderFemale)

	lead := BuildLead(req)
	assert.Nil(t, lead.SchoolID)
	assert.Equal(t, int64(30), *lead.InstructorTariffID)
	assert.Equal(t, model.GenderFemale, *lead.PreferredGender)
	assert.Equal(t, 12000, *lead.PriceKZT)

	req.Type = model.LeadTypeTests
	req.Language = ""
	lead = BuildLead(req)
	assert.Equal(t, 5000, *lead.PriceKZT)
	assert.Equal(t, model.LanguageRU, lead.Language)
	assert.Nil(t, lead.InstructorID)
}
