// seed carga los datos de demostración: tres bases, usuarios por rol, personal vinculado y activos iniciales.
// Opcionalmente importa activos desde una planilla CSV exportada en ISO-8859-1 (separador ';'):
//
//	nombre;tipo;cantidad;condicion;base
//
// Uso: go run ./cmd/seed [ruta/activos.csv]
// Si el usuario admin ya existe no vuelve a sembrar; la importación CSV se aplica igual.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/inventory"
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/infrastructure/memory"
	"github.com/jhoicas/logistica-api/internal/infrastructure/postgres"
	"github.com/jhoicas/logistica-api/pkg/config"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

type demoUser struct {
	username, password, fullName string
	role                         entity.Role
	base                         string // nombre de base; vacío para ADMIN
	rank                         string // si no está vacío se crea el registro de personal vinculado
}

type demoAsset struct {
	name string
	kind entity.EquipmentType
	qty  int
	cond entity.Condition
	base string
}

var demoBases = [][2]string{
	{"Alpha Base", "Northern Region"},
	{"Bravo Base", "Southern Region"},
	{"Charlie Base", "Eastern Region"},
}

var demoUsers = []demoUser{
	{"admin", "admin123", "System Administrator", entity.RoleAdmin, "", ""},
	{"commander1", "commander123", "Alpha Base Commander", entity.RoleBaseCommander, "Alpha Base", ""},
	{"commander2", "commander123", "Bravo Base Commander", entity.RoleBaseCommander, "Bravo Base", ""},
	{"logistics1", "logistics123", "Alpha Logistics Officer", entity.RoleLogisticsOfficer, "Alpha Base", ""},
	{"logistics2", "logistics123", "Bravo Logistics Officer", entity.RoleLogisticsOfficer, "Bravo Base", ""},
	{"john.smith", "personnel123", "John Smith", entity.RolePersonnel, "Alpha Base", "Sergeant"},
	{"jane.doe", "personnel123", "Jane Doe", entity.RolePersonnel, "Alpha Base", "Corporal"},
	{"bob.wilson", "personnel123", "Bob Wilson", entity.RolePersonnel, "Bravo Base", "Private"},
}

var demoAssets = []demoAsset{
	{"Humvee", entity.EquipmentVehicle, 10, entity.ConditionGood, "Alpha Base"},
	{"M16 Rifle", entity.EquipmentWeapon, 50, entity.ConditionGood, "Alpha Base"},
	{"5.56mm Rounds", entity.EquipmentAmmunition, 10000, entity.ConditionGood, "Alpha Base"},
	{"Tank M1", entity.EquipmentVehicle, 5, entity.ConditionGood, "Bravo Base"},
	{"AK-47", entity.EquipmentWeapon, 30, entity.ConditionFair, "Bravo Base"},
	{"9mm Rounds", entity.EquipmentAmmunition, 5000, entity.ConditionGood, "Charlie Base"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var store ports.Store
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("almacén en memoria: la siembra solo valida los datos")
		store = memory.NewStore()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		store = postgres.NewStore(pool, cfg.DB.LockTimeout())
	}

	adminID, err := seedDemo(ctx, store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar datos de demostración")
	}

	if len(os.Args) > 1 {
		n, err := importAssets(ctx, store, adminID, os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Str("file", os.Args[1]).Msg("importar activos")
		}
		log.Info().Int("assets", n).Str("file", os.Args[1]).Msg("activos importados")
	}
}

// seedDemo crea bases, usuarios y personal en una transacción, luego los activos vía alta normal
// (la cantidad inicial queda como compra). Devuelve el ID del admin.
func seedDemo(ctx context.Context, store ports.Store, log *logger.Logger) (string, error) {
	if u, err := store.Repos().Users.GetByUsername(ctx, "admin"); err == nil {
		log.Info().Msg("datos de demostración ya presentes, se omite la siembra")
		return u.ID, nil
	} else if !domain.IsNotFound(err) {
		return "", err
	}

	var adminID string
	err := store.Run(ctx, func(r ports.Repos) error {
		now := time.Now().UTC()
		bases := make(map[string]string, len(demoBases))
		for _, b := range demoBases {
			base := &entity.Base{ID: uuid.New().String(), Name: b[0], Location: b[1], CreatedAt: now}
			if err := r.Bases.Create(ctx, base); err != nil {
				return fmt.Errorf("base %s: %w", b[0], err)
			}
			bases[b[0]] = base.ID
		}

		for _, du := range demoUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(du.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u := &entity.User{
				ID:           uuid.New().String(),
				Username:     du.username,
				PasswordHash: string(hash),
				FullName:     du.fullName,
				Role:         du.role,
				CreatedAt:    now,
			}
			if du.base != "" {
				id := bases[du.base]
				u.BaseID = &id
			}
			if err := r.Users.Create(ctx, u); err != nil {
				return fmt.Errorf("usuario %s: %w", du.username, err)
			}
			if du.role == entity.RoleAdmin {
				adminID = u.ID
			}
			if du.rank == "" {
				continue
			}
			userID := u.ID
			if err := r.Personnel.Create(ctx, &entity.Personnel{
				ID:        uuid.New().String(),
				Name:      du.fullName,
				Rank:      du.rank,
				UserID:    &userID,
				BaseID:    bases[du.base],
				CreatedAt: now,
			}); err != nil {
				return fmt.Errorf("personal %s: %w", du.fullName, err)
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	admin := authz.Identity{UserID: adminID, Username: "admin", Role: entity.RoleAdmin}
	assets := inventory.NewAssetUseCase(store, nil)
	byName, err := baseIDsByName(ctx, store)
	if err != nil {
		return "", err
	}
	for _, da := range demoAssets {
		if _, err := assets.Create(ctx, admin, dto.CreateAssetRequest{
			Name:          da.name,
			EquipmentType: string(da.kind),
			Condition:     string(da.cond),
			BaseID:        byName[strings.ToLower(da.base)],
			Quantity:      da.qty,
		}); err != nil {
			return "", fmt.Errorf("activo %s: %w", da.name, err)
		}
	}
	log.Info().
		Int("bases", len(demoBases)).
		Int("users", len(demoUsers)).
		Int("assets", len(demoAssets)).
		Msg("datos de demostración creados")
	return adminID, nil
}

// importAssets da de alta cada fila del CSV como ADMIN; la cantidad inicial queda registrada como compra.
func importAssets(ctx context.Context, store ports.Store, adminID, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	byName, err := baseIDsByName(ctx, store)
	if err != nil {
		return 0, err
	}

	admin := authz.Identity{UserID: adminID, Username: "admin", Role: entity.RoleAdmin}
	assets := inventory.NewAssetUseCase(store, nil)

	rd := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	rd.Comma = ';'
	rd.FieldsPerRecord = 5
	rd.TrimLeadingSpace = true

	n := 0
	for line := 1; ; line++ {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if line == 1 && strings.EqualFold(rec[0], "nombre") {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return n, fmt.Errorf("línea %d: cantidad %q", line, rec[2])
		}
		baseID, ok := byName[strings.ToLower(strings.TrimSpace(rec[4]))]
		if !ok {
			return n, fmt.Errorf("línea %d: base %q desconocida", line, rec[4])
		}
		if _, err := assets.Create(ctx, admin, dto.CreateAssetRequest{
			Name:          rec[0],
			EquipmentType: rec[1],
			Condition:     rec[3],
			BaseID:        baseID,
			Quantity:      qty,
		}); err != nil {
			return n, fmt.Errorf("línea %d: %w", line, err)
		}
		n++
	}
}

func baseIDsByName(ctx context.Context, store ports.Store) (map[string]string, error) {
	bases, err := store.Repos().Bases.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(bases))
	for _, b := range bases {
		byName[strings.ToLower(b.Name)] = b.ID
	}
	return byName, nil
}
