package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/edulearn-platform/learning-service/internal/auth"
	"github.com/edulearn-platform/learning-service/internal/events"
	"github.com/edulearn-platform/learning-service/internal/repositories"
	"github.com/edulearn-platform/learning-service/internal/validator"
)

// ServiceManager wires and owns every service instance.
type ServiceManager interface {
	Auth() AuthService
	Student() StudentService
	Module() ModuleService
	Progress() ProgressService
	Teacher() TeacherService
	Admin() AdminService
	AI() AIService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceManagerConfig holds the cross-service dependencies that are not
// repositories: token signing, password hashing, eventing and the AI
// completion provider. Publisher and Provider may be nil; the dependent
// services degrade instead of failing.
type ServiceManagerConfig struct {
	Tokens    *auth.TokenService
	Hasher    auth.PasswordHasher
	Publisher events.EventPublisher
	Provider  CompletionProvider
}

type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	authService     AuthService
	studentService  StudentService
	moduleService   ModuleService
	progressService ProgressService
	teacherService  TeacherService
	adminService    AdminService
	aiService       AIService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// Initialize builds every service. Construction order matters: the AI and
// teacher services consume the progress service.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.config.Tokens == nil {
		return fmt.Errorf("token service is required")
	}
	if sm.config.Hasher == nil {
		return fmt.Errorf("password hasher is required")
	}

	sm.logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.repo, sm.config.Tokens, sm.config.Hasher, sm.config.Publisher, sm.logger, sm.validator)
	sm.studentService = NewStudentService(sm.repo, sm.logger, sm.validator)
	sm.moduleService = NewModuleService(sm.repo, sm.logger, sm.validator)
	sm.progressService = NewProgressService(sm.repo, sm.config.Publisher, sm.logger, sm.validator)
	sm.aiService = NewAIService(sm.repo, sm.config.Provider, sm.progressService, sm.logger)
	sm.teacherService = NewTeacherService(sm.repo, sm.progressService, sm.aiService, sm.config.Publisher, sm.logger, sm.validator)
	sm.adminService = NewAdminService(sm.repo, sm.config.Publisher, sm.logger)

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			sm.logger.Warn("failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.studentService
}

func (sm *serviceManager) Module() ModuleService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.moduleService
}

func (sm *serviceManager) Progress() ProgressService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.progressService
}

func (sm *serviceManager) Teacher() TeacherService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.teacherService
}

func (sm *serviceManager) Admin() AdminService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.adminService
}

func (sm *serviceManager) AI() AIService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.aiService
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}
