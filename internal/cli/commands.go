package cli

import (
	"fmt"
	"os"
	"time"

	"Demonstra/internal/domain/dre"
	"Demonstra/internal/domain/user"
	"Demonstra/internal/infrastructure"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria ou atualiza as tabelas",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := infrastructure.NewDb(opts.cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrações aplicadas.")
			return nil
		},
	}
}

type periodFlags struct {
	company string
	month   int
	year    int
}

func (p *periodFlags) bind(cmd *cobra.Command) {
	now := time.Now()
	cmd.Flags().StringVar(&p.company, "company", "", "id da empresa (obrigatório)")
	cmd.Flags().IntVar(&p.month, "month", int(now.Month()), "mês de referência (1-12)")
	cmd.Flags().IntVar(&p.year, "year", now.Year(), "ano de referência")
	_ = cmd.MarkFlagRequired("company")
}

func parseCompany(raw string) (ulid.ULID, error) {
	id, err := pkg.ParseULID(raw)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("id de empresa inválido %q: %w", raw, err)
	}
	return id, nil
}

func loadReport(cmd *cobra.Command, svc *services, p periodFlags) (*dre.Report, string, error) {
	companyID, err := parseCompany(p.company)
	if err != nil {
		return nil, "", err
	}
	ctx := cmd.Context()
	report, err := svc.reports.Report(ctx, companyID, p.month, p.year)
	if err != nil {
		return nil, "", err
	}
	entity, err := svc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	return report, fmt.Sprintf("DRE %s - %s", entity.DisplayName(), report.Reference.Label()), nil
}

func newReportCommand(opts *rootOptions) *cobra.Command {
	var p periodFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Mostra a DRE dos 12 meses terminados no mês informado",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openServices(opts.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			report, title, err := loadReport(cmd, svc, p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(title, report))
			return nil
		},
	}
	p.bind(cmd)
	return cmd
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var p periodFlags
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta a DRE para XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openServices(opts.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			report, title, err := loadReport(cmd, svc, p)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("dre-%04d-%02d.xlsx", p.year, p.month)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := dre.WriteXLSX(f, report, title); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Arquivo gravado em %s\n", out)
			return nil
		},
	}
	p.bind(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "arquivo de saída")
	return cmd
}

func newTreeCommand(opts *rootOptions) *cobra.Command {
	var company string
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Mostra a árvore de contas configurada para a empresa",
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := parseCompany(company)
			if err != nil {
				return err
			}
			svc, closeFn, err := openServices(opts.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			entity, err := svc.companies.GetByID(ctx, companyID)
			if err != nil {
				return err
			}
			tree, err := svc.accounts.TreeForCompany(ctx, companyID)
			if err != nil {
				return err
			}
			if tree.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma conta configurada.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderAccountTree(entity.DisplayName(), tree))
			return nil
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "id da empresa (obrigatório)")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	var company string
	cmd := &cobra.Command{
		Use:   "import <arquivo>",
		Short: "Importa lançamentos de um CSV ou XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := parseCompany(company)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			svc, closeFn, err := openServices(opts.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := svc.rawData.Import(cmd.Context(), companyID, args[0], f)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d lançamento(s) importado(s).\n", result.Inserted)
			return nil
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "id da empresa (obrigatório)")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newCopyStructureCommand(opts *rootOptions) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "copy-structure",
		Short: "Substitui a configuração da DRE de uma empresa pela de outra",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromID, err := parseCompany(from)
			if err != nil {
				return err
			}
			toID, err := parseCompany(to)
			if err != nil {
				return err
			}
			svc, closeFn, err := openServices(opts.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := svc.companyConfig.CopyStructure(cmd.Context(), fromID, toID)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copiadas %d conta(s) e %d componente(s).\n", result.Accounts, result.Components)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "empresa de origem (obrigatório)")
	cmd.Flags().StringVar(&to, "to", "", "empresa de destino (obrigatório)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newCreateUserCommand(opts *rootOptions) *cobra.Command {
	var name, email, password, role, company string
	var allCompanies bool
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Cria um usuário (use para o primeiro admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var companyID *ulid.ULID
			if company != "" {
				id, err := parseCompany(company)
				if err != nil {
					return err
				}
				companyID = &id
			}
			svc, closeFn, err := openServices(opts.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			created, err := svc.users.Create(cmd.Context(), user.CreateUserInput{
				Name:                  name,
				Email:                 email,
				Password:              password,
				Role:                  user.Role(role),
				CompanyId:             companyID,
				HasAllCompaniesAccess: allCompanies,
			})
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuário %s criado (%s).\n", created.Email, created.Id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "nome (obrigatório)")
	cmd.Flags().StringVar(&email, "email", "", "email (obrigatório)")
	cmd.Flags().StringVar(&password, "password", "", "senha (obrigatório)")
	cmd.Flags().StringVar(&role, "role", string(user.RoleAdmin), "perfil: admin ou user")
	cmd.Flags().StringVar(&company, "company", "", "empresa do usuário")
	cmd.Flags().BoolVar(&allCompanies, "all-companies", false, "acesso a todas as empresas")
	for _, f := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
