package usecase

import (
	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
)

// UseCases aggregates the application use cases over one repository
type UseCases struct {
	repo              interfaces.Repository
	workspaceRegistry *model.WorkspaceRegistry

	Property *PropertyUseCase
	Record   *RecordUseCase
	Comment  *CommentUseCase
	Activity *ActivityUseCase
}

type Option func(*UseCases)

func New(repo interfaces.Repository, registry *model.WorkspaceRegistry, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:              repo,
		workspaceRegistry: registry,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Property = NewPropertyUseCase(repo)
	uc.Record = NewRecordUseCase(repo)
	uc.Activity = NewActivityUseCase(repo)
	uc.Comment = NewCommentUseCase(repo, uc.Activity)

	return uc
}
