package user

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"socialnet/api"
	"socialnet/internal/common"
	"socialnet/internal/dbmysql"
)

type UserService interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, string, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.User, string, error)
	Me(ctx context.Context, userID uint64) (*api.User, error)
	UpdateMe(ctx context.Context, userID uint64, req api.UpdateProfileRequest) (*api.User, error)
	List(ctx context.Context, page, limit int) (*api.UserPage, error)
	Get(ctx context.Context, userID, viewerID uint64) (*api.User, error)
	ToggleFollow(ctx context.Context, targetID, actorID uint64) (*api.FollowResult, error)
}

type userService struct {
	userRepo   UserRepository
	followRepo FollowRepository
}

func NewUserService(userRepo UserRepository, followRepo FollowRepository) UserService {
	return &userService{userRepo: userRepo, followRepo: followRepo}
}

func (s *userService) Register(ctx context.Context, req api.RegisterRequest) (*api.User, string, error) {
	var fields []common.FieldError
	if fe := common.ValidateEmail(req.Email); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := common.ValidateUsername(req.Username); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := common.ValidateName("firstName", req.FirstName); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := common.ValidateName("lastName", req.LastName); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := common.ValidatePassword(req.Password); fe != nil {
		fields = append(fields, *fe)
	}
	if len(fields) > 0 {
		return nil, "", common.NewValidationError(fields...)
	}

	hashed, err := common.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &dbmysql.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     strings.TrimSpace(req.Username),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hashed,
		IsActive:     true,
	}

	// Duplicate email/username surfaces as a unique-constraint violation and
	// is mapped to DUPLICATE_ENTRY at the boundary.
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := common.GenerateToken(u.UserID, u.Username)
	if err != nil {
		return nil, "", err
	}

	out, err := s.profile(ctx, u, true, false, 0)
	if err != nil {
		return nil, "", err
	}
	return out, token, nil
}

func (s *userService) Login(ctx context.Context, req api.LoginRequest) (*api.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", common.NewValidationMessage("Email and password are required")
	}

	u, err := s.userRepo.ByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", common.NewUnauthorized("Invalid credentials")
		}
		return nil, "", err
	}

	if err := common.CheckPassword(req.Password, u.PasswordHash); err != nil {
		return nil, "", common.NewUnauthorized("Invalid credentials")
	}

	token, err := common.GenerateToken(u.UserID, u.Username)
	if err != nil {
		return nil, "", err
	}

	out, err := s.profile(ctx, u, true, false, 0)
	if err != nil {
		return nil, "", err
	}
	return out, token, nil
}

func (s *userService) Me(ctx context.Context, userID uint64) (*api.User, error) {
	u, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, notFoundAsUser(err)
	}
	return s.profile(ctx, u, true, false, 0)
}

func (s *userService) UpdateMe(ctx context.Context, userID uint64, req api.UpdateProfileRequest) (*api.User, error) {
	u, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, notFoundAsUser(err)
	}

	var fields []common.FieldError
	if req.FirstName != nil {
		if fe := common.ValidateName("firstName", *req.FirstName); fe != nil {
			fields = append(fields, *fe)
		}
	}
	if req.LastName != nil {
		if fe := common.ValidateName("lastName", *req.LastName); fe != nil {
			fields = append(fields, *fe)
		}
	}
	if req.Bio != nil && len(*req.Bio) > 500 {
		fields = append(fields, common.FieldError{Field: "bio", Message: "bio must be less than 500 characters"})
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError(fields...)
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Avatar != nil {
		u.Avatar = *req.Avatar
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return s.profile(ctx, u, true, false, 0)
}

func (s *userService) List(ctx context.Context, page, limit int) (*api.UserPage, error) {
	total, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListActive(ctx, common.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	out := make([]api.User, 0, len(users))
	for i := range users {
		shaped, err := s.profile(ctx, &users[i], false, false, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, *shaped)
	}

	return &api.UserPage{
		Users:      out,
		Pagination: common.NewPagination(page, limit, total),
	}, nil
}

func (s *userService) Get(ctx context.Context, userID, viewerID uint64) (*api.User, error) {
	u, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, notFoundAsUser(err)
	}

	withFollowing := viewerID != 0 && viewerID != userID
	return s.profile(ctx, u, false, withFollowing, viewerID)
}

func (s *userService) ToggleFollow(ctx context.Context, targetID, actorID uint64) (*api.FollowResult, error) {
	if targetID == actorID {
		return nil, common.NewValidationMessage("You cannot follow yourself")
	}

	if _, err := s.userRepo.ByID(ctx, targetID); err != nil {
		return nil, notFoundAsUser(err)
	}

	exists, err := s.followRepo.Exists(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	var isFollowing bool
	if exists {
		if err := s.followRepo.Delete(ctx, actorID, targetID); err != nil {
			return nil, err
		}
		isFollowing = false
	} else {
		err := s.followRepo.Create(ctx, &dbmysql.Follow{FollowerID: actorID, FollowingID: targetID})
		switch {
		case err == nil:
			isFollowing = true
		case common.IsDuplicate(err):
			// lost a toggle race; the row is already there
			isFollowing = true
		default:
			return nil, err
		}
	}

	count, err := s.followRepo.CountFollowers(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &api.FollowResult{IsFollowing: isFollowing, FollowerCount: count}, nil
}

// profile shapes a stored user into the API contract.
func (s *userService) profile(ctx context.Context, u *dbmysql.User, includeEmail, withFollowing bool, viewerID uint64) (*api.User, error) {
	counts, err := s.userRepo.ProfileCounts(ctx, u.UserID)
	if err != nil {
		return nil, err
	}

	out := &api.User{
		ID:        u.UserID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		Counts:    &counts,
	}
	if includeEmail {
		out.Email = u.Email
	}
	if withFollowing {
		following, err := s.followRepo.Exists(ctx, viewerID, u.UserID)
		if err != nil {
			return nil, err
		}
		out.IsFollowing = &following
	}

	return out, nil
}

func notFoundAsUser(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewNotFound("User not found")
	}
	return err
}
