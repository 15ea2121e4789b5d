package domain

// CardStatus represents the spaced-repetition lifecycle state of a flashcard.
// It is always derived from the (repetitions, interval, easeFactor) triple
// after a review — never set independently.
type CardStatus string

const (
	CardStatusNew      CardStatus = "NEW"
	CardStatusLearning CardStatus = "LEARNING"
	CardStatusReview   CardStatus = "REVIEW"
	CardStatusMastered CardStatus = "MASTERED"
)

func (s CardStatus) String() string { return string(s) }

func (s CardStatus) IsValid() bool {
	switch s {
	case CardStatusNew, CardStatusLearning, CardStatusReview, CardStatusMastered:
		return true
	}
	return false
}

// DifficultyTier is the authored difficulty of a flashcard.
type DifficultyTier string

const (
	DifficultyEasy   DifficultyTier = "EASY"
	DifficultyMedium DifficultyTier = "MEDIUM"
	DifficultyHard   DifficultyTier = "HARD"
)

func (d DifficultyTier) String() string { return string(d) }

func (d DifficultyTier) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ProficiencyTier is the user's self-assessed preparation level. It drives
// the per-card time estimate used by the study load planner.
type ProficiencyTier string

const (
	ProficiencyBeginner     ProficiencyTier = "beginner"
	ProficiencyIntermediate ProficiencyTier = "intermediate"
	ProficiencyAdvanced     ProficiencyTier = "advanced"
)

func (p ProficiencyTier) String() string { return string(p) }

func (p ProficiencyTier) IsValid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced:
		return true
	}
	return false
}

// AsvabCategory identifies one of the nine ASVAB test sections.
type AsvabCategory string

const (
	CategoryGeneralScience         AsvabCategory = "GENERAL_SCIENCE"
	CategoryArithmeticReasoning    AsvabCategory = "ARITHMETIC_REASONING"
	CategoryWordKnowledge          AsvabCategory = "WORD_KNOWLEDGE"
	CategoryParagraphComprehension AsvabCategory = "PARAGRAPH_COMPREHENSION"
	CategoryMathKnowledge          AsvabCategory = "MATHEMATICS_KNOWLEDGE"
	CategoryElectronicsInfo        AsvabCategory = "ELECTRONICS_INFORMATION"
	CategoryAutoShopInfo           AsvabCategory = "AUTO_SHOP_INFORMATION"
	CategoryMechanicalComp         AsvabCategory = "MECHANICAL_COMPREHENSION"
	CategoryAssemblingObjects      AsvabCategory = "ASSEMBLING_OBJECTS"
)

func (c AsvabCategory) String() string { return string(c) }

func (c AsvabCategory) IsValid() bool {
	switch c {
	case CategoryGeneralScience, CategoryArithmeticReasoning, CategoryWordKnowledge,
		CategoryParagraphComprehension, CategoryMathKnowledge, CategoryElectronicsInfo,
		CategoryAutoShopInfo, CategoryMechanicalComp, CategoryAssemblingObjects:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeFlashcard EntityType = "FLASHCARD"
	EntityTypeUser      EntityType = "USER"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeFlashcard, EntityTypeUser:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
