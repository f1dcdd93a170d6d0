// Package mocks provides gomock implementations of the domain ports.
//
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockSessionRepository(ctrl)
//	store.EXPECT().GetWithUser(gomock.Any(), "id").Return(session, user, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_repository_mock.go blog-api/internal/domain SessionRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_cache_mock.go blog-api/internal/domain SessionCache
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go blog-api/internal/domain UserRepository,ProfileRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=post_repository_mock.go blog-api/internal/domain PostRepository,TagRepository,ContentStore
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=comment_repository_mock.go blog-api/internal/domain CommentRepository,EventPublisher
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=series_repository_mock.go blog-api/internal/domain SeriesRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=reaction_repository_mock.go blog-api/internal/domain ReactionRepository,ReportRepository,ResourceChecker
