package directory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/seabattle-go/internal/dependencies/clock"
	"github.com/mcoot/seabattle-go/internal/dependencies/idgen"
	"github.com/mcoot/seabattle-go/internal/model"
	"github.com/mcoot/seabattle-go/internal/storage"
)

// Credentials is a name/password pair used for seeding
type Credentials struct {
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

// Config holds configuration for the player directory
type Config struct {
	BcryptCost int
}

// DefaultConfig returns default directory configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost: bcrypt.DefaultCost,
	}
}

// Registration is the outcome of a register-or-login request
type Registration struct {
	Player  *model.Player
	Created bool // true when the name was new
}

// Service owns player identities and win counts
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     idgen.Generator
	cost    int
	logger  *slog.Logger
}

// New creates a new directory Service
func New(storage storage.Storage, clock clock.Clock, ids idgen.Generator, cfg Config, logger *slog.Logger) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
		cost:    cfg.BcryptCost,
		logger:  logger,
	}
}

// RegisterOrLogin creates a player on first use of a name, otherwise checks the password
func (s *Service) RegisterOrLogin(ctx context.Context, name, password string) (*Registration, error) {
	if name == "" {
		return nil, model.ErrInvalidName
	}

	existing, err := s.storage.GetPlayerByName(ctx, name)
	if err == nil {
		if !checkPassword(existing.PasswordHash, password) {
			s.logger.Info("login rejected", slog.String("name", name))
			return nil, model.ErrIncorrectCredentials
		}
		return &Registration{Player: existing}, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player := &model.Player{
		Index:        model.PlayerIndex(s.ids.NewID()),
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("name", name),
		slog.String("player_index", string(player.Index)),
	)

	return &Registration{Player: player, Created: true}, nil
}

// Seed registers each credential pair that does not exist yet
func (s *Service) Seed(ctx context.Context, creds []Credentials) error {
	for _, c := range creds {
		if _, err := s.RegisterOrLogin(ctx, c.Name, c.Password); err != nil {
			// A differing stored password just means the seed was already applied
			if errors.Is(err, model.ErrIncorrectCredentials) {
				continue
			}
			return err
		}
	}
	return nil
}

// GetPlayer retrieves a player by index
func (s *Service) GetPlayer(ctx context.Context, index model.PlayerIndex) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, index)
}

// RecordWin adds one win. Unknown indexes are ignored.
func (s *Service) RecordWin(ctx context.Context, index model.PlayerIndex) error {
	player, err := s.storage.GetPlayer(ctx, index)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			s.logger.Warn("win recorded for unknown player", slog.String("player_index", string(index)))
			return nil
		}
		return err
	}

	player.Wins++
	player.UpdatedAt = s.clock.Now()

	return s.storage.SavePlayer(ctx, player)
}

// SnapshotWinners returns players with at least one win, most wins first, ties by name
func (s *Service) SnapshotWinners(ctx context.Context) ([]model.Winner, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	winners := make([]model.Winner, 0, len(players))
	for _, p := range players {
		if p.Wins > 0 {
			winners = append(winners, model.Winner{Name: p.Name, Wins: p.Wins})
		}
	}

	sort.SliceStable(winners, func(i, j int) bool {
		if winners[i].Wins != winners[j].Wins {
			return winners[i].Wins > winners[j].Wins
		}
		return winners[i].Name < winners[j].Name
	})

	return winners, nil
}

// Passwords are digested before bcrypt so inputs past bcrypt's 72-byte limit still compare exactly
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digest(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), digest(password)) == nil
}
