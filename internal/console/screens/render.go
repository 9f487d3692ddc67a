package screens

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/crmdeck/crmdeck/internal/common/dto"
	"github.com/crmdeck/crmdeck/internal/console/toast"
)

// RenderTenants writes the tenant table
func RenderTenants(w io.Writer, tenants []dto.Tenant) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCODE\tCOLOR")
	for _, t := range tenants {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.Name, t.Code, t.PrimaryColor)
	}
	_ = tw.Flush()
}

// RenderUsers writes the user table with display role labels
func RenderUsers(w io.Writer, users []dto.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tCOMPANY")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.FullName, u.Email, RoleLabel(u.Role), u.TenantCode)
	}
	_ = tw.Flush()
}

// RenderCustomers writes the customer table
func RenderCustomers(w io.Writer, customers []dto.Customer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tCOMPANY")
	for _, c := range customers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone, c.CompanyName)
	}
	_ = tw.Flush()
}

// RenderToasts writes any pending notifications, one per line
func RenderToasts(w io.Writer, toasts []toast.Toast) {
	for _, t := range toasts {
		if t.Message != "" {
			fmt.Fprintf(w, "[%s] %s: %s\n", t.Kind, t.Title, t.Message)
			continue
		}
		fmt.Fprintf(w, "[%s] %s\n", t.Kind, t.Title)
	}
}
