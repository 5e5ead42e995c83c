// Package i18n holds the user-facing messages in Czech and English.
package i18n

import "strings"

// Default is the language used when no preference matches.
const Default = "cs"

// Supported lists the available languages.
var Supported = []string{"cs", "en"}

var messages = map[string]map[string]string{
	"cs": {
		"page_not_found":         "404 - Stránka nenalezena",
		"server_error":           "500 - Chyba na straně serveru",
		"invoice_not_found":      "Faktura nenalezena",
		"customer_not_found":     "Zákazník nenalezen",
		"user_not_found":         "Uživatel nenalezen",
		"registry_failed":        "Nepodařilo se načíst údaje zákazníka z ARES",
		"registry_not_found":     "Subjekt s tímto IČO nebyl v ARES nalezen",
		"customer_delete_failed": "Nepodařilo se smazat zákazníka a jeho faktury",
		"pdf_failed":             "Nepodařilo se vytvořit PDF faktury",

		"title.invoices":         "Faktury",
		"title.all_customers":    "Všichni zákazníci",
		"title.new_customer":     "Nový zákazník",
		"title.edit_customer":    "Upravit zákazníka",
		"title.new_invoice":      "Nová faktura",
		"title.invoice":          "Detail faktury",
		"title.set_user":         "Nastavení údajů uživatele",
		"nav.invoices":           "Faktury",
		"nav.new_invoice":        "Nová faktura",
		"nav.customers":          "Zákazníci",
		"nav.new_customer":       "Nový zákazník",
		"nav.user":               "Můj profil",
		"field.name":             "Název",
		"field.email":            "E-mail",
		"field.phone":            "Telefon",
		"field.address":          "Adresa",
		"field.ico":              "IČO",
		"field.dico":             "DIČ",
		"field.customer":         "Zákazník",
		"field.amount":           "Částka",
		"field.invoice_date":     "Datum vystavení",
		"field.due_date":         "Datum splatnosti",
		"field.status":           "Stav",
		"field.invoice_text":     "Text faktury",
		"status.paid":            "Zaplaceno",
		"status.pending":         "Čeká na platbu",
		"status.overdue":         "Po splatnosti",
		"action.save":            "Uložit",
		"action.edit":            "Upravit",
		"action.delete":          "Smazat",
		"action.detail":          "Detail",
		"action.download":        "Stáhnout PDF",
		"action.search":          "Vyhledat v ARES",
		"label.total":            "Celkem",
		"label.id":               "Č.",
		"label.no_invoices":      "Zatím žádné faktury.",
		"label.no_customers":     "Zatím žádní zákazníci.",
		"label.unknown_customer": "Neznámý zákazník",
		"label.search_ico":       "Vyhledat podle IČO",
		"label.confirm_delete":   "Opravdu smazat?",
		"label.profile_missing":  "Profil zatím není nastaven.",
	},
	"en": {
		"page_not_found":         "404 - Page not found",
		"server_error":           "500 - Internal server error",
		"invoice_not_found":      "Invoice not found",
		"customer_not_found":     "Customer not found",
		"user_not_found":         "User not found",
		"registry_failed":        "Failed to fetch customer data from ARES API",
		"registry_not_found":     "No subject with this ICO was found in ARES",
		"customer_delete_failed": "Failed to delete customer and associated invoices",
		"pdf_failed":             "Failed to generate PDF invoice",

		"title.invoices":         "Invoices",
		"title.all_customers":    "All Customers",
		"title.new_customer":     "Create New Customer",
		"title.edit_customer":    "Edit Customer",
		"title.new_invoice":      "Create New Invoice",
		"title.invoice":          "Invoice Details",
		"title.set_user":         "Set User Details",
		"nav.invoices":           "Invoices",
		"nav.new_invoice":        "New invoice",
		"nav.customers":          "Customers",
		"nav.new_customer":       "New customer",
		"nav.user":               "My profile",
		"field.name":             "Name",
		"field.email":            "Email",
		"field.phone":            "Phone",
		"field.address":          "Address",
		"field.ico":              "ICO",
		"field.dico":             "DICO",
		"field.customer":         "Customer",
		"field.amount":           "Amount",
		"field.invoice_date":     "Invoice date",
		"field.due_date":         "Due date",
		"field.status":           "Status",
		"field.invoice_text":     "Invoice text",
		"status.paid":            "Paid",
		"status.pending":         "Pending",
		"status.overdue":         "Overdue",
		"action.save":            "Save",
		"action.edit":            "Edit",
		"action.delete":          "Delete",
		"action.detail":          "Detail",
		"action.download":        "Download PDF",
		"action.search":          "Search ARES",
		"label.total":            "Total",
		"label.id":               "No.",
		"label.no_invoices":      "No invoices yet.",
		"label.no_customers":     "No customers yet.",
		"label.unknown_customer": "Unknown customer",
		"label.search_ico":       "Search by ICO",
		"label.confirm_delete":   "Really delete?",
		"label.profile_missing":  "No profile has been set up yet.",
	},
}

// T returns the message for code in lang. Unknown languages fall back to
// Default and unknown codes are returned as-is.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[Default][code]; ok {
		return s
	}
	return code
}

// Supports reports whether lang has a message table.
func Supports(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// Match returns the first supported language of an Accept-Language header.
func Match(header string) (string, bool) {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		base, _, _ := strings.Cut(strings.ToLower(tag), "-")
		if Supports(base) {
			return base, true
		}
	}
	return "", false
}

// DetectLanguage is Match with a fallback to Default.
func DetectLanguage(header string) string {
	if lang, ok := Match(header); ok {
		return lang
	}
	return Default
}
