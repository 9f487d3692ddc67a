// crmctl is the console client of the CRM: login, the super-admin
// screens for tenants and users, and the per-tenant customer view.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/common/cnst"
	"github.com/crmdeck/crmdeck/internal/common/config"
	"github.com/crmdeck/crmdeck/internal/console/api"
	"github.com/crmdeck/crmdeck/internal/console/listview"
	"github.com/crmdeck/crmdeck/internal/console/screens"
	"github.com/crmdeck/crmdeck/internal/console/session"
	"github.com/crmdeck/crmdeck/internal/console/toast"
	"github.com/crmdeck/crmdeck/pkg/logger"
	"github.com/crmdeck/crmdeck/pkg/trace"
	"github.com/crmdeck/crmdeck/pkg/version"
)

type console struct {
	logger        *zap.Logger
	client        *api.Client
	sessions      session.Store
	toasts        *toast.Queue
	traceShutdown func(context.Context) error

	login *screens.LoginScreen
	admin *screens.AdminScreen
	crm   *screens.CRMScreen
}

var (
	configPath string

	email      string
	password   string
	tenantCode string

	search  string
	sortBy  string
	order   string
	roleTag string

	fullName     string
	role         string
	primaryColor string
	phone        string
	companyName  string
	address      string
)

func newConsole() (*console, error) {
	cfg, cfgPath, err := config.LoadConfig[config.ConsoleConfig](configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration from %s: %w", cfgPath, err)
	}

	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	opts := []api.Option{api.WithTimeout(cfg.Timeout.Std())}
	var traceShutdown func(context.Context) error
	if cfg.Tracing.Enabled {
		shutdown, err := trace.Init(context.Background(), &cfg.Tracing, lg)
		if err != nil {
			lg.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			traceShutdown = shutdown
			opts = append(opts, api.WithTracing())
		}
	}
	client := api.NewClient(cfg.BaseURL, opts...)

	sessions, err := session.NewFileStore(cfg.SessionPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	toasts := toast.NewQueue(cfg.ToastTTL.Std())

	return &console{
		logger:        lg,
		client:        client,
		sessions:      sessions,
		toasts:        toasts,
		traceShutdown: traceShutdown,
		login:         screens.NewLoginScreen(client, sessions, toasts, lg),
		admin:         screens.NewAdminScreen(client, sessions, toasts, lg),
		crm:           screens.NewCRMScreen(client, sessions, toasts, lg),
	}, nil
}

// flush prints pending toasts to stderr so table output stays clean,
// then drains the span exporter before the process exits.
func (c *console) flush() {
	screens.RenderToasts(os.Stderr, c.toasts.Snapshot())
	c.toasts.Close()
	if c.traceShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.traceShutdown(ctx)
	}
	_ = c.logger.Sync()
}

func sortDirective() listview.Sort {
	if sortBy == "" {
		return listview.Sort{}
	}
	dir := listview.Asc
	if order == "desc" {
		dir = listview.Desc
	}
	return listview.Sort{Key: sortBy, Direction: dir}
}

// applySort replays the column toggle until the screen reaches the
// requested key and direction.
func applySort(toggle func(string), s listview.Sort) {
	if s.Key == "" {
		return
	}
	toggle(s.Key)
	if s.Direction == listview.Desc {
		toggle(s.Key)
	}
}

func exitForScreens(err error) error {
	if errors.Is(err, screens.ErrRedirectToLogin) {
		return errors.New("not logged in (or wrong role): run 'crmctl login' first")
	}
	return err
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole()
			if err != nil {
				return err
			}
			defer c.flush()

			route, err := c.login.Submit(cmd.Context(), email, password, tenantCode)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in. Landing screen: %s\n", route)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&tenantCode, "tenant", "", "tenant code (not needed for superadmin)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and clear the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole()
			if err != nil {
				return err
			}
			defer c.flush()

			c.login.Logout(cmd.Context())
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole()
			if err != nil {
				return err
			}
			defer c.flush()

			sess, err := c.sessions.Load()
			if err != nil {
				return errors.New("no active session")
			}
			if sess.Token != "" {
				if _, err := c.client.Me(cmd.Context(), sess.Token); err != nil {
					var apiErr *api.Error
					if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
						return errors.New("session is no longer valid: run 'crmctl login' again")
					}
					// Backend unreachable: show the local session anyway
				}
			}
			fmt.Printf("%s (%s)\n", sess.UserEmail, screens.RoleLabel(sess.Role))
			if sess.TenantCode != cnst.MasterTenantCode {
				fmt.Printf("Company: %s (%s)\n", sess.TenantName, sess.TenantCode)
			}
			return nil
		},
	}
}

func newAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Super-admin console: companies and users",
	}

	tenantsCmd := &cobra.Command{
		Use:   "tenants",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole()
			if err != nil {
				return err
			}
			defer c.flush()

			if err := c.admin.LoadTenants(cmd.Context()); err != nil {
				return exitForScreens(err)
			}
			c.admin.SetSearch(search)
			applySort(c.admin.ToggleTenantSort, sortDirective())
			screens.RenderTenants(os.Stdout, c.admin.VisibleTenants())
			return nil
		},
	}
	tenantsCmd.Flags().StringVar(&search, "search", "", "free-text filter over name and code")
	tenantsCmd.Flags().StringVar(&sortBy, "sort-by", "", "sort column (name, code)")
	tenantsCmd.Flags().StringVar(&order, "order", "asc", "sort direction (asc, desc)")

	tenantAddCmd := &cobra.Command{
		Use:   "tenant-add NAME",
		Short: "Provision a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole()
			if err != nil {
				return err
			}
			defer c.flush()

			created, err := c.admin.CreateTenant(cmd.Context(), args[0], tenantCode, primaryColor)
			if err != nil {
				return exitForScreens(err)
			}
			fmt.Printf("Created company %s (%s)\n", created.Name, created.Code)
			return nil
		},
	}
	tenantAddCmd.Flags().StringVar(&tenantCode, "code", "", "tenant code (derived from the name when empty)")
	tenantAddCmd.Flags().StringVar(&primaryColor, "color", "", "brand color, e.g. #0071CE")

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List users across companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole()
			if err != nil {
				return err
			}
			defer c.flush()

			if err := c.admin.LoadUsers(cmd.Context()); err != nil {
				return exitForScreens(err)
			}
			c.admin.SetSearch(search)
			c.admin.SetRoleFilter(roleTag)
			applySort(c.admin.ToggleUserSort, sortDirective())
			screens.RenderUsers(os.Stdout, c.admin.VisibleUsers())
			return nil
		},
	}
	usersCmd.Flags().StringVar(&search, "search", "", "free-text filter over name, email, and company")
	usersCmd.Flags().StringVar(&roleTag, "role", cnst.RoleFilterAll, "role filter (superadmin, manager, rep, or all)")
	usersCmd.Flags().StringVar(&sortBy, "sort-by", "", "sort column (full_name, email, role, tenant_code)")
	usersCmd.Flags().StringVar(&order, "order", "asc", "sort direction (asc, desc)")

	userAddCmd := &cobra.Command{
		Use:   "user-add",
		Short: "Create a user inside a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole()
			if err != nil {
				return err
			}
			defer c.flush()

			created, err := c.admin.CreateUser(cmd.Context(), fullName, email, password, role, tenantCode)
			if err != nil {
				return exitForScreens(err)
			}
			fmt.Printf("Created user %s (%s)\n", created.Email, screens.RoleLabel(created.Role))
			return nil
		},
	}
	userAddCmd.Flags().StringVar(&fullName, "name", "", "full name")
	userAddCmd.Flags().StringVar(&email, "email", "", "login email")
	userAddCmd.Flags().StringVar(&password, "password", "", "initial password")
	userAddCmd.Flags().StringVar(&role, "role", cnst.RoleRep, "role tag (manager, rep)")
	userAddCmd.Flags().StringVar(&tenantCode, "tenant", "", "tenant code the user belongs to")

	adminCmd.AddCommand(tenantsCmd, tenantAddCmd, usersCmd, userAddCmd)
	return adminCmd
}

func newCRMCmd() *cobra.Command {
	crmCmd := &cobra.Command{
		Use:   "crm",
		Short: "Per-company customer view",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the company's customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole()
			if err != nil {
				return err
			}
			defer c.flush()

			if tenant, err := c.crm.Tenant(); err == nil {
				fmt.Printf("%s\n\n", tenant.Name)
			}

			c.crm.SetSearch(search)
			if err := c.crm.Load(cmd.Context()); err != nil {
				return exitForScreens(err)
			}
			applySort(c.crm.ToggleSort, sortDirective())
			screens.RenderCustomers(os.Stdout, c.crm.Visible())
			return nil
		},
	}
	listCmd.Flags().StringVar(&search, "search", "", "server-side search over name, email, phone, and company")
	listCmd.Flags().StringVar(&sortBy, "sort-by", "", "sort column (name, email, phone, company_name)")
	listCmd.Flags().StringVar(&order, "order", "asc", "sort direction (asc, desc)")

	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole()
			if err != nil {
				return err
			}
			defer c.flush()

			created, err := c.crm.AddCustomer(cmd.Context(), args[0], email, phone, companyName, address)
			if err != nil {
				return exitForScreens(err)
			}
			fmt.Printf("Added customer %s (#%d)\n", created.Name, created.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&email, "email", "", "customer email")
	addCmd.Flags().StringVar(&phone, "phone", "", "customer phone")
	addCmd.Flags().StringVar(&companyName, "company", "", "company the customer belongs to")
	addCmd.Flags().StringVar(&address, "address", "", "postal address")

	crmCmd.AddCommand(listCmd, addCmd)
	return crmCmd
}

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "CRM console",
	Long:  `crmctl is the terminal front end of the CRM: login, company and user administration, and per-company customer management`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "configs/console.yaml", "path to configuration file")
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of crmctl",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("crmctl version %s\n", version.Get())
		},
	})
	rootCmd.AddCommand(newLoginCmd(), newLogoutCmd(), newWhoamiCmd(), newAdminCmd(), newCRMCmd())
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.SetFlags(0)
		log.Fatalf("crmctl: %v", err)
	}
}
