package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/unischedule/internal/app/models"
	appServices "github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

var defaultFaculties = []string{"Engineering Faculty", "Science Faculty"}

var defaultSubjects = []appModels.Subject{
	{Name: "Mathematics", Description: "Calculus and linear algebra"},
	{Name: "Physics", Description: "Mechanics and electromagnetism"},
	{Name: "Programming", Description: "Introduction to programming"},
}

// CreateDefaultData creates the default faculties and subjects if they
// don't exist. Errors are collected so one failure doesn't stop the rest.
func CreateDefaultData(ctx context.Context, svc *appServices.Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Faculties/Subjects)...")
	var finalErr error

	for _, name := range defaultFaculties {
		id, err := svc.Faculty.CreateFaculty(ctx, &appModels.Faculty{Name: name})
		switch {
		case errors.Is(err, apperrors.ErrResourceAlreadyExists):
			lgr.Debug().Str("faculty", name).Msg("Faculty already exists, skipping creation")
		case err != nil:
			lgr.Error().Err(err).Str("faculty", name).Msg("Error creating faculty")
			finalErr = errors.Join(finalErr, err)
		default:
			lgr.Info().Int64("facultyID", id).Str("faculty", name).Msg("Default faculty created")
		}
	}

	for _, subject := range defaultSubjects {
		s := subject
		id, err := svc.Subject.CreateSubject(ctx, &s)
		switch {
		case errors.Is(err, apperrors.ErrResourceAlreadyExists):
			lgr.Debug().Str("subject", s.Name).Msg("Subject already exists, skipping creation")
		case err != nil:
			lgr.Error().Err(err).Str("subject", s.Name).Msg("Error creating subject")
			finalErr = errors.Join(finalErr, err)
		default:
			lgr.Info().Int64("subjectID", id).Str("subject", s.Name).Msg("Default subject created")
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
