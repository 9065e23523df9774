package repositories

// RepositoryProvider bundles all repository implementations for service
// container construction.
type RepositoryProvider struct {
	LeadRepo          LeadRepository
	UserRepo          UserRepository
	CategoryLimitRepo CategoryLimitRepository
}
