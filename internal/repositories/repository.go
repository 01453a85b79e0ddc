package repositories

import "context"

// Repository aggregates all domain repositories behind one dependency.
type Repository interface {
	User() UserRepository
	Module() ModuleRepository
	Quiz() QuizRepository
	Progress() ProgressRepository
	Enrollment() EnrollmentRepository
	ChatLog() ChatLogRepository

	// WithTransaction runs fn against a transaction-bound Repository;
	// any error rolls the whole transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
