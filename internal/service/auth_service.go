package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"gembreak-be/internal/config"
	"gembreak-be/internal/dto"
	"gembreak-be/internal/entity"
	"gembreak-be/internal/pkg/logger"
	"gembreak-be/internal/pkg/serverutils"
	"gembreak-be/internal/repository/contract"
	"gembreak-be/internal/repository/specification"
	"gembreak-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	// LoginAdmin checks the fixed operator credentials and issues an admin
	// session token.
	LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (string, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResult, error)
	LoginUser(ctx context.Context, req *dto.UserLoginRequest) (*dto.AuthResult, error)
	MyInviteCode(ctx context.Context, userId string) (*dto.InviteCodeStatusResponse, error)
}

type AuthServiceImpl struct {
	userRepo   contract.UserRepository
	codeRepo   contract.InviteCodeRepository
	uowFactory unitofwork.RepositoryFactory
	admin      config.AdminConfig
	logger     logger.ILogger
}

func NewAuthService(
	userRepo contract.UserRepository,
	codeRepo contract.InviteCodeRepository,
	uowFactory unitofwork.RepositoryFactory,
	admin config.AdminConfig,
	logger logger.ILogger,
) IAuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		codeRepo:   codeRepo,
		uowFactory: uowFactory,
		admin:      admin,
		logger:     logger,
	}
}

func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (string, error) {
	if s.admin.Username == "" || s.admin.Password == "" {
		s.logger.Error("auth", "admin credentials are not configured", nil)
		return "", serverutils.Internal("Server configuration error.")
	}
	if req.Username != s.admin.Username || req.Password != s.admin.Password {
		return "", serverutils.Unauthorized("Invalid credentials")
	}

	token, err := serverutils.SignToken(jwt.MapClaims{
		"username": s.admin.Username,
		"is_admin": true,
	})
	if err != nil {
		return "", serverutils.Internal("Failed to sign session token")
	}
	return token, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResult, error) {
	username := strings.ToLower(req.Username)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.Internal("Failed to start transaction")
	}
	defer uow.Rollback()

	userRepo := uow.UserRepository()
	codeRepo := uow.InviteCodeRepository()

	// The code is either another user's unused personal code or an unused
	// admin-minted one.
	inviter, err := userRepo.FindOne(ctx,
		specification.ByPersonalInviteCode{Code: req.InviteCodeToUse},
		specification.Filter("is_invite_code_used", false),
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to validate invite code")
	}
	var adminCode *entity.InviteCode
	if inviter == nil {
		adminCode, err = codeRepo.FindOne(ctx,
			specification.ByCode{Code: req.InviteCodeToUse},
			specification.UnusedOnly{},
		)
		if err != nil {
			return nil, serverutils.Internal("Failed to validate invite code")
		}
		if adminCode == nil {
			return nil, serverutils.BadRequest("Invalid or already used invite code.")
		}
	}

	existing, err := userRepo.FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, serverutils.Internal("Failed to check username")
	}
	if existing != nil {
		return nil, serverutils.Conflict("Username already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, serverutils.Internal("Failed to hash password")
	}

	personalCode, err := s.freshInviteCode(ctx, userRepo, codeRepo)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:       username,
		PasswordHash:   string(hash),
		InviteCode:     personalCode,
		UsedInviteCode: req.InviteCodeToUse,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return nil, serverutils.Internal("Failed to create user")
	}

	if inviter != nil {
		if err := userRepo.MarkInviteCodeUsed(ctx, inviter.Id); err != nil {
			return nil, serverutils.Internal("Failed to consume invite code")
		}
	} else {
		if err := codeRepo.MarkUsed(ctx, adminCode.Id, user.Id); err != nil {
			return nil, serverutils.Internal("Failed to consume invite code")
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.Internal("Failed to commit transaction")
	}

	token, err := serverutils.SignToken(jwt.MapClaims{
		"user_id":  user.Id.String(),
		"username": user.Username,
	})
	if err != nil {
		return nil, serverutils.Internal("Failed to sign session token")
	}
	return &dto.AuthResult{Token: token, UserId: user.Id.String(), Username: user.Username}, nil
}

func (s *AuthServiceImpl) LoginUser(ctx context.Context, req *dto.UserLoginRequest) (*dto.AuthResult, error) {
	user, err := s.userRepo.FindOne(ctx, specification.ByUsername{Username: strings.ToLower(req.Username)})
	if err != nil {
		return nil, serverutils.Internal("Failed to load user")
	}
	if user == nil {
		return nil, serverutils.Unauthorized("Invalid credentials.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, serverutils.Unauthorized("Invalid credentials.")
	}

	token, err := serverutils.SignToken(jwt.MapClaims{
		"user_id":  user.Id.String(),
		"username": user.Username,
	})
	if err != nil {
		return nil, serverutils.Internal("Failed to sign session token")
	}
	return &dto.AuthResult{Token: token, UserId: user.Id.String(), Username: user.Username}, nil
}

func (s *AuthServiceImpl) MyInviteCode(ctx context.Context, userId string) (*dto.InviteCodeStatusResponse, error) {
	id, err := uuid.Parse(userId)
	if err != nil {
		return nil, serverutils.Unauthorized("Session invalid or expired.")
	}
	user, err := s.userRepo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, serverutils.Internal("Failed to load user")
	}
	if user == nil {
		return nil, serverutils.NotFound("User not found.")
	}

	resp := &dto.InviteCodeStatusResponse{
		Success:          true,
		InviteCode:       user.InviteCode,
		IsInviteCodeUsed: user.IsInviteCodeUsed,
	}
	if user.IsInviteCodeUsed {
		resp.Message = "Your invite code has already been used."
	}
	return resp, nil
}

// freshInviteCode mints a 16-hex code that collides with neither personal
// user codes nor admin-minted codes.
func (s *AuthServiceImpl) freshInviteCode(ctx context.Context, userRepo contract.UserRepository, codeRepo contract.InviteCodeRepository) (string, error) {
	for {
		code, err := randomHexCode()
		if err != nil {
			return "", serverutils.Internal("Failed to generate invite code")
		}
		userHit, err := userRepo.FindOne(ctx, specification.ByPersonalInviteCode{Code: code})
		if err != nil {
			return "", serverutils.Internal("Failed to check invite code")
		}
		if userHit != nil {
			continue
		}
		codeHit, err := codeRepo.FindOne(ctx, specification.ByCode{Code: code})
		if err != nil {
			return "", serverutils.Internal("Failed to check invite code")
		}
		if codeHit == nil {
			return code, nil
		}
	}
}

func randomHexCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
