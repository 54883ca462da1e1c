package breach

import (
	"strings"

	"deepguard/internal/models"
)

// RecoverySteps derives ordered remediation actions from the exposed data
// classes across all breaches. Steps are deterministic for a given breach set
// so repeated checks produce the same guidance.
func RecoverySteps(breaches []models.BreachData) []models.RecoveryStep {
	if len(breaches) == 0 {
		return nil
	}

	classes := make(map[string]bool)
	for _, b := range breaches {
		for _, c := range b.DataClasses {
			classes[strings.ToLower(c)] = true
		}
	}

	var steps []models.RecoveryStep
	priority := 1

	add := func(step models.RecoveryStep) {
		step.ID = "step-" + strings.ReplaceAll(strings.ToLower(step.Title), " ", "-")
		step.Status = models.StepPending
		step.Priority = priority
		priority++
		steps = append(steps, step)
	}

	if classes["passwords"] {
		add(models.RecoveryStep{
			Title:         "Change compromised passwords",
			Description:   "Update the password on every account that shares credentials with the breached services.",
			Icon:          "key",
			EstimatedTime: "15 min",
			ActionType:    models.ActionGuided,
		})
		add(models.RecoveryStep{
			Title:         "Enable two-factor authentication",
			Description:   "Turn on 2FA for accounts where passwords were exposed.",
			Icon:          "shield",
			EstimatedTime: "10 min",
			ActionType:    models.ActionExternal,
			ActionData:    models.JSONMap{"url": "https://2fa.directory"},
		})
	}

	if classes["email addresses"] {
		add(models.RecoveryStep{
			Title:         "Watch for phishing attempts",
			Description:   "Your address is circulating; treat unexpected password-reset and invoice emails with suspicion.",
			Icon:          "mail-warning",
			EstimatedTime: "5 min",
			ActionType:    models.ActionInternal,
		})
	}

	if classes["credit cards"] || classes["partial credit card data"] {
		add(models.RecoveryStep{
			Title:         "Review card statements",
			Description:   "Check recent transactions and ask your bank to reissue any exposed card.",
			Icon:          "credit-card",
			EstimatedTime: "20 min",
			ActionType:    models.ActionExternal,
		})
	}

	if classes["phone numbers"] {
		add(models.RecoveryStep{
			Title:         "Guard against SIM swapping",
			Description:   "Ask your carrier to add a port-out PIN to your account.",
			Icon:          "smartphone",
			EstimatedTime: "10 min",
			ActionType:    models.ActionGuided,
		})
	}

	// Always close with ongoing monitoring when anything was exposed.
	add(models.RecoveryStep{
		Title:         "Keep monitoring this identity",
		Description:   "DeepGuard re-checks this identity and raises an alert when it appears in a new breach.",
		Icon:          "radar",
		EstimatedTime: "1 min",
		ActionType:    models.ActionInternal,
	})

	return steps
}
