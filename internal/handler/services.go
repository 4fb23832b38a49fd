package handler

import "net/http"

// serviceInfo describes one entry of the service catalogue shown on the
// public site.
type serviceInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// serviceCatalogue is static content; it has no admin surface.
var serviceCatalogue = []serviceInfo{
	{
		Title:       "Bridal Mehendi",
		Description: "Exquisite full bridal mehendi designs covering hands and feet with intricate patterns, portraits, and traditional motifs for your special day.",
	},
	{
		Title:       "Engagement Mehendi",
		Description: "Beautiful designs perfect for engagement ceremonies, featuring elegant patterns that complement your outfit and jewelry.",
	},
	{
		Title:       "Arabic Mehendi",
		Description: "Bold and beautiful Arabic style designs with flowing patterns, florals, and geometric shapes for a contemporary look.",
	},
	{
		Title:       "Festival Mehendi",
		Description: "Celebrate Karva Chauth, Diwali, Eid, and other festivals with stunning traditional mehendi designs.",
	},
	{
		Title:       "Indo-Western Fusion",
		Description: "A perfect blend of traditional Indian and modern Western elements creating unique and trendy designs.",
	},
	{
		Title:       "Custom Designs",
		Description: "Get personalized mehendi designs tailored to your preferences, including names, dates, and custom motifs.",
	},
}

// HandleServices serves the static service catalogue.
// GET /api/services
func HandleServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, serviceCatalogue)
}
