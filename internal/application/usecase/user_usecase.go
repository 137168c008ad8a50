package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/logistica-api/internal/application/audit"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

const minPasswordLen = 6

// UserUseCase administración de usuarios (solo canManageUsers).
type UserUseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(store ports.Store) *UserUseCase {
	return &UserUseCase{tx: store, repos: store.Repos()}
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context, id authz.Identity) ([]dto.UserResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanManageUsers)); err != nil {
		return nil, err
	}
	list, err := uc.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario: hashea password con bcrypt y persiste. Username duplicado devuelve ErrConflict.
func (uc *UserUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanManageUsers)); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, fmt.Errorf("%w: username y full_name son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password demasiado corta", domain.ErrInvalidInput)
	}
	role := entity.Role(strings.ToUpper(in.Role))
	baseID, err := normalizeRoleBase(role, in.BaseID)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         role,
		BaseID:       baseID,
		CreatedAt:    time.Now().UTC(),
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if baseID != nil {
			if _, err := r.Bases.GetByID(ctx, *baseID); err != nil {
				return err
			}
		}
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionCreateUser,
			EntityType: entity.EntityUser,
			EntityID:   u.ID,
			Details:    fmt.Sprintf("Usuario %s creado con rol %s", u.Username, u.Role),
			UserID:     id.UserID,
			BaseID:     u.BaseIDOrEmpty(),
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// Update cambia nombre, password, rol o base. Rol y base se validan juntos.
func (uc *UserUseCase) Update(ctx context.Context, id authz.Identity, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanManageUsers)); err != nil {
		return nil, err
	}
	var u *entity.User
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		u, err = r.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if in.FullName != nil {
			name := strings.TrimSpace(*in.FullName)
			if name == "" {
				return fmt.Errorf("%w: full_name vacío", domain.ErrInvalidInput)
			}
			u.FullName = name
		}
		if in.Password != nil {
			if len(*in.Password) < minPasswordLen {
				return fmt.Errorf("%w: password demasiado corta", domain.ErrInvalidInput)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			u.PasswordHash = string(hash)
		}
		if in.Role != nil || in.BaseID != nil {
			role := u.Role
			if in.Role != nil {
				role = entity.Role(strings.ToUpper(*in.Role))
			}
			base := u.BaseID
			if in.BaseID != nil {
				base = in.BaseID
			}
			baseID, err := normalizeRoleBase(role, base)
			if err != nil {
				return err
			}
			if baseID != nil {
				if _, err := r.Bases.GetByID(ctx, *baseID); err != nil {
					return err
				}
			}
			// El personal vinculado debe seguir siendo de la misma base y rol PERSONNEL.
			linked, err := r.Personnel.GetByUserID(ctx, u.ID)
			switch {
			case err == nil:
				if role != entity.RolePersonnel || baseID == nil || *baseID != linked.BaseID {
					return fmt.Errorf("%w: el usuario está vinculado a personal de la base %s", domain.ErrInvalidInput, linked.BaseID)
				}
			case !domain.IsNotFound(err):
				return err
			}
			u.Role, u.BaseID = role, baseID
		}
		if err := r.Users.Update(ctx, u); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionUpdateUser,
			EntityType: entity.EntityUser,
			EntityID:   u.ID,
			Details:    fmt.Sprintf("Usuario %s actualizado (%s)", u.Username, u.Role),
			UserID:     id.UserID,
			BaseID:     u.BaseIDOrEmpty(),
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// Delete elimina un usuario. El personal vinculado se conserva con user_id en NULL.
// Un usuario no puede eliminarse a sí mismo; con historial (compras, traslados...) devuelve ErrConflict.
func (uc *UserUseCase) Delete(ctx context.Context, id authz.Identity, userID string) error {
	if err := authz.Check(id, authz.HasCapability(authz.CanManageUsers)); err != nil {
		return err
	}
	if userID == id.UserID {
		return fmt.Errorf("%w: no puede eliminar su propio usuario", domain.ErrInvalidInput)
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		u, err := r.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := r.Personnel.UnlinkUser(ctx, u.ID); err != nil {
			return err
		}
		if err := r.Users.Delete(ctx, u.ID); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionDeleteUser,
			EntityType: entity.EntityUser,
			EntityID:   u.ID,
			Details:    "Usuario eliminado: " + u.Username,
			UserID:     id.UserID,
			BaseID:     u.BaseIDOrEmpty(),
		})
	})
}

// normalizeRoleBase valida el rol y exige base para roles distintos de ADMIN.
// Para ADMIN la base es opcional; una cadena vacía se trata como nil.
func normalizeRoleBase(role entity.Role, baseID *string) (*string, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	if baseID != nil && strings.TrimSpace(*baseID) == "" {
		baseID = nil
	}
	if role.RequiresBase() && baseID == nil {
		return nil, fmt.Errorf("%w: el rol %s requiere base_id", domain.ErrInvalidInput, role)
	}
	return baseID, nil
}
