package fixture

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tokengen/internal/auth"
	"github.com/spec-kit/ticket-tokengen/internal/config"
	"github.com/spec-kit/ticket-tokengen/internal/domain"
	"github.com/spec-kit/ticket-tokengen/pkg/util"
)

// Bundle maps role name to its signed token, one entry per profile.
type Bundle map[string]string

// SeedUser is a row for the server's users table, emitted when the
// user-seed artifact is enabled.
type SeedUser struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	PasswordHash string `json:"password_hash"`
	IsActive     bool   `json:"is_active"`
}

// Generator produces the full token fixture set in one pass.
type Generator struct {
	issuer     *auth.TokenIssuer
	profiles   []domain.UserProfile
	output     config.OutputConfig
	bcryptCost int
	out        io.Writer
	logger     *zap.Logger
}

// Dependencies encapsulates generator requirements.
type Dependencies struct {
	Issuer     *auth.TokenIssuer
	Profiles   []domain.UserProfile
	Output     config.OutputConfig
	BcryptCost int
	Out        io.Writer
	Logger     *zap.Logger
}

// NewGenerator builds the generator.
func NewGenerator(deps Dependencies) *Generator {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		issuer:     deps.Issuer,
		profiles:   deps.Profiles,
		output:     deps.Output,
		bcryptCost: deps.BcryptCost,
		out:        out,
		logger:     logger,
	}
}

// Run issues one token per profile in declaration order, prints the
// report and export lines, and persists the bundle. Artifacts are
// written only after every profile signed successfully, so a signing
// failure never leaves a partial bundle on disk.
func (g *Generator) Run() (Bundle, error) {
	g.logger.Info("generating test tokens", zap.Int("profiles", len(g.profiles)))

	bundle := make(Bundle, len(g.profiles))
	tokens := make([]string, len(g.profiles))
	for i, profile := range g.profiles {
		role := string(profile.Role)
		if _, exists := bundle[role]; exists {
			return nil, util.NewSigningError(fmt.Sprintf("duplicate role %q in profile table", role), nil)
		}
		token, err := g.issuer.Issue(profile)
		if err != nil {
			return nil, err
		}
		bundle[role] = token
		tokens[i] = token
	}

	g.printReport(tokens)

	if err := g.writeBundle(bundle); err != nil {
		return nil, err
	}
	fmt.Fprintf(g.out, "Tokens saved to: %s\n", g.output.TokensPath)

	if g.output.EmitUserSeed {
		if err := g.writeUserSeed(); err != nil {
			return nil, err
		}
		fmt.Fprintf(g.out, "User seed saved to: %s\n", g.output.UsersPath)
	}

	g.printExports(tokens)
	return bundle, nil
}

func (g *Generator) printReport(tokens []string) {
	fmt.Fprintln(g.out, "GA Ticketing System - JWT Token Generator")
	fmt.Fprintln(g.out, strings.Repeat("=", 50))
	fmt.Fprintln(g.out)

	for i, profile := range g.profiles {
		fmt.Fprintf(g.out, "%s USER:\n", strings.ToUpper(string(profile.Role)))
		fmt.Fprintf(g.out, "  Name: %s\n", profile.Name)
		fmt.Fprintf(g.out, "  Email: %s\n", profile.Email)
		fmt.Fprintf(g.out, "  Role: %s\n", profile.Role)
		fmt.Fprintf(g.out, "  Token: %s\n", tokens[i])
		fmt.Fprintln(g.out)
	}
}

// printExports emits one export line per profile, derived from the
// table rather than a fixed role list, so extending the table extends
// the export block with it.
func (g *Generator) printExports(tokens []string) {
	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, "Usage examples:")
	for i, profile := range g.profiles {
		name := strings.ToUpper(string(profile.Role)) + "_TOKEN"
		fmt.Fprintf(g.out, "export %s=%q\n", name, tokens[i])
	}
}

func (g *Generator) writeBundle(bundle Bundle) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return util.NewSigningError("failed to encode token bundle", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(g.output.TokensPath, data, 0o644); err != nil {
		return util.NewSigningError("failed to write token bundle", err)
	}
	g.logger.Info("token bundle written",
		zap.String("path", g.output.TokensPath),
		zap.Int("tokens", len(bundle)),
	)
	return nil
}

func (g *Generator) writeUserSeed() error {
	seed := make([]SeedUser, 0, len(g.profiles))
	for _, profile := range g.profiles {
		hash, err := auth.HashPassword(profile.TestPassword, g.bcryptCost)
		if err != nil {
			return util.NewSigningError(fmt.Sprintf("failed to hash password for %s", profile.ID), err)
		}
		seed = append(seed, SeedUser{
			ID:           profile.ID,
			EmployeeID:   profile.EmployeeID,
			Name:         profile.Name,
			Email:        profile.Email,
			Role:         string(profile.Role),
			Department:   profile.Department,
			PasswordHash: hash,
			IsActive:     true,
		})
	}

	data, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		return util.NewSigningError("failed to encode user seed", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(g.output.UsersPath, data, 0o644); err != nil {
		return util.NewSigningError("failed to write user seed", err)
	}
	g.logger.Info("user seed written",
		zap.String("path", g.output.UsersPath),
		zap.Int("users", len(seed)),
	)
	return nil
}
