package service

import (
	"context"
	"testing"

	"blog-api/internal/domain"
	"blog-api/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportService_Create(t *testing.T) {
	ctx := context.Background()
	target := domain.UserResource{UserID: "u2"}

	t.Run("files report", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reports := mocks.NewMockReportRepository(ctrl)
		resources := mocks.NewMockResourceChecker(ctrl)
		resources.EXPECT().Exists(gomock.Any(), target).Return(true, nil)
		reports.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		r, err := NewReportService(reports, resources).Create(ctx, "u1", ReportParams{Resource: target, Reason: "spam"})

		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, domain.KindUser, r.ResourceType)
		assert.Equal(t, "u2", r.ResourceID)
	})

	t.Run("unknown resource", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resources := mocks.NewMockResourceChecker(ctrl)
		resources.EXPECT().Exists(gomock.Any(), target).Return(false, nil)

		_, err := NewReportService(mocks.NewMockReportRepository(ctrl), resources).Create(ctx, "u1", ReportParams{Resource: target, Reason: "spam"})

		assert.ErrorIs(t, err, domain.ErrResourceNotFound)
	})
}
