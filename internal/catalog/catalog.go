// Package catalog is the fixed registry of entities readable through the
// generic table endpoint, plus the descriptors of the onboarding tables.
package catalog

import (
	"sort"

	q "nanny-match/internal/query"
)

func id() q.Column        { return q.Col("id", q.KindUUID) }
func createdAt() q.Column { return q.Col("created_at", q.KindTimestamp) }
func updatedAt() q.Column { return q.Col("updated_at", q.KindTimestamp) }

// profiles.password_hash is deliberately not declared.
var entities = []*q.Descriptor{
	q.NewDescriptor("profiles",
		id(),
		q.Col("user_id", q.KindUUID),
		q.Col("email", q.KindText),
		q.Col("phone", q.KindText),
		q.Col("first_name", q.KindText),
		q.Col("last_name", q.KindText),
		q.Col("city", q.KindText),
		q.Col("bio", q.KindText),
		q.Col("avatar_url", q.KindText),
		q.Col("is_verified", q.KindBool),
		createdAt(),
		updatedAt(),
	),
	q.NewDescriptor("user_roles",
		id(),
		q.Col("user_id", q.KindUUID),
		q.Col("role", q.KindText),
		createdAt(),
	),
	q.NewDescriptor("profile_photos",
		id(),
		q.Col("user_id", q.KindUUID),
		q.Col("url", q.KindText),
		q.Col("is_primary", q.KindBool),
		q.Col("sort_order", q.KindInt),
		createdAt(),
	),
	q.NewDescriptor("nannies",
		id(),
		q.Col("user_id", q.KindUUID),
		q.Col("experience_years", q.KindInt),
		q.Col("hourly_rate", q.KindFloat),
		q.Col("currency", q.KindText),
		q.Col("about", q.KindText),
		q.Col("city", q.KindText),
		q.Col("is_available", q.KindBool),
		q.Col("rating", q.KindFloat),
		q.Col("reviews_count", q.KindInt),
		createdAt(),
		updatedAt(),
	),
	q.NewDescriptor("nanny_services",
		id(),
		q.Col("nanny_id", q.KindUUID),
		q.Col("service_code", q.KindText),
		q.Col("price", q.KindFloat),
		createdAt(),
	),
	q.NewDescriptor("nanny_education",
		id(),
		q.Col("nanny_id", q.KindUUID),
		q.Col("institution", q.KindText),
		q.Col("degree", q.KindText),
		q.Col("field_of_study", q.KindText),
		q.Col("start_date", q.KindDate),
		q.Col("end_date", q.KindDate),
		createdAt(),
	),
	q.NewDescriptor("nanny_languages",
		id(),
		q.Col("nanny_id", q.KindUUID),
		q.Col("language_code", q.KindText),
		q.Col("proficiency", q.KindText),
		createdAt(),
	),
	q.NewDescriptor("nanny_age_experience",
		id(),
		q.Col("nanny_id", q.KindUUID),
		q.Col("age_group", q.KindText),
		q.Col("years", q.KindInt),
		createdAt(),
	),
	q.NewDescriptor("certificates",
		id(),
		q.Col("nanny_id", q.KindUUID),
		q.Col("title", q.KindText),
		q.Col("issuer", q.KindText),
		q.Col("issued_on", q.KindDate),
		q.Col("file_url", q.KindText),
		q.Col("is_verified", q.KindBool),
		createdAt(),
	),
	q.NewDescriptor("saved_parents",
		id(),
		q.Col("nanny_id", q.KindUUID),
		q.Col("parent_id", q.KindUUID),
		createdAt(),
	),
	q.NewDescriptor("parents",
		id(),
		q.Col("user_id", q.KindUUID),
		q.Col("city", q.KindText),
		q.Col("address", q.KindText),
		q.Col("children_count", q.KindInt),
		q.Col("about", q.KindText),
		createdAt(),
		updatedAt(),
	),
	q.NewDescriptor("parent_children",
		id(),
		q.Col("parent_id", q.KindUUID),
		q.Col("first_name", q.KindText),
		q.Col("birth_date", q.KindDate),
		q.Col("gender", q.KindText),
		q.Col("special_needs", q.KindText),
		createdAt(),
	),
	q.NewDescriptor("parent_requirements",
		id(),
		q.Col("parent_id", q.KindUUID),
		q.Col("schedule", q.KindJSON),
		q.Col("preferred_start_time", q.KindTime),
		q.Col("preferred_end_time", q.KindTime),
		q.Col("budget_per_hour", q.KindFloat),
		q.Col("languages", q.KindJSON),
		q.Col("notes", q.KindText),
		createdAt(),
		updatedAt(),
	),
	q.NewDescriptor("saved_nannies",
		id(),
		q.Col("parent_id", q.KindUUID),
		q.Col("nanny_id", q.KindUUID),
		createdAt(),
	),
	q.NewDescriptor("bookings",
		id(),
		q.Col("parent_id", q.KindUUID),
		q.Col("nanny_id", q.KindUUID),
		q.Col("booking_date", q.KindDate),
		q.Col("start_time", q.KindTime),
		q.Col("end_time", q.KindTime),
		q.Col("status", q.KindText),
		q.Col("total_price", q.KindFloat),
		q.Col("notes", q.KindText),
		createdAt(),
		updatedAt(),
	),
	q.NewDescriptor("reviews",
		id(),
		q.Col("booking_id", q.KindUUID),
		q.Col("author_id", q.KindUUID),
		q.Col("target_id", q.KindUUID),
		q.Col("rating", q.KindInt),
		q.Col("comment", q.KindText),
		createdAt(),
	),
}

var entityByName = func() map[string]*q.Descriptor {
	out := make(map[string]*q.Descriptor, len(entities))
	for _, d := range entities {
		if _, dup := out[d.Name()]; dup {
			panic("catalog: duplicate entity " + d.Name())
		}
		out[d.Name()] = d
	}
	return out
}()

// Lookup resolves a generic entity by table name.
func Lookup(name string) (*q.Descriptor, bool) {
	d, ok := entityByName[name]
	return d, ok
}

// Names lists the generic entities in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(entities))
	for _, d := range entities {
		out = append(out, d.Name())
	}
	sort.Strings(out)
	return out
}

// Descriptors of the onboarding tables. They drive the filter and order
// handling of the configuration registry and are not reachable through
// Lookup.
var (
	OnboardingConfigs = q.NewDescriptor("onboarding_configs",
		id(),
		q.Col("target_role", q.KindText),
		q.Col("name", q.KindText),
		q.Col("is_default", q.KindBool),
		q.Col("is_active", q.KindBool),
		q.Col("version", q.KindInt),
		createdAt(),
		updatedAt(),
	)

	OnboardingSteps = q.NewDescriptor("onboarding_steps",
		id(),
		q.Col("config_id", q.KindUUID),
		q.Col("step_number", q.KindInt),
		q.Col("step_key", q.KindText),
		q.Col("title", q.KindText),
		q.Col("description", q.KindText),
		q.Col("is_required", q.KindBool),
		q.Col("is_active", q.KindBool),
		createdAt(),
	)

	OnboardingFields = q.NewDescriptor("onboarding_fields",
		id(),
		q.Col("step_id", q.KindUUID),
		q.Col("group_id", q.KindUUID),
		q.Col("field_key", q.KindText),
		q.Col("field_type", q.KindText),
		q.Col("label", q.KindText),
		q.Col("description", q.KindText),
		q.Col("placeholder", q.KindText),
		q.Col("help_text", q.KindText),
		q.Col("reference_category_code", q.KindText),
		q.Col("is_required", q.KindBool),
		q.Col("is_active", q.KindBool),
		q.Col("field_order", q.KindInt),
		q.Col("allow_custom_values", q.KindBool),
		q.Col("validation_rules", q.KindJSON),
		q.Col("field_config", q.KindJSON),
		createdAt(),
		updatedAt(),
	)
)

// Tables lists every table the service expects, for schema drift checks.
func Tables() []*q.Descriptor {
	out := make([]*q.Descriptor, 0, len(entities)+3)
	out = append(out, OnboardingConfigs, OnboardingSteps, OnboardingFields)
	out = append(out, entities...)
	return out
}
