package remote

import (
	"github.com/mesh-intelligence/propai/pkg/types"
)

// Function paths served by the document store.
const (
	FnGetProperties         = "properties:getProperties"
	FnGetProperty           = "properties:getProperty"
	FnCreateProperty        = "properties:createProperty"
	FnUpdateProperty        = "properties:updateProperty"
	FnDeleteProperty        = "properties:deleteProperty"
	FnGetFeaturedProperties = "properties:getFeaturedProperties"
	FnSearchProperties      = "properties:searchProperties"

	FnGetUsers       = "users:getUsers"
	FnGetUser        = "users:getUser"
	FnGetUserByEmail = "users:getUserByEmail"
	FnCreateUser     = "users:createUser"
	FnUpdateUser     = "users:updateUser"
	FnDeleteUser     = "users:deleteUser"
	FnGetUsersByRole = "users:getUsersByRole"
	FnSearchUsers    = "users:searchUsers"

	FnListMessages      = "messages:listMessages"
	FnGetMessage        = "messages:getMessage"
	FnGetMessages       = "messages:getMessages"
	FnGetRecentMessages = "messages:getRecentMessages"
	FnGetAIMessages     = "messages:getAIMessages"
	FnGetUserMessages   = "messages:getUserMessages"
	FnCreateMessage     = "messages:createMessage"
	FnUpdateMessage     = "messages:updateMessage"
	FnDeleteMessage     = "messages:deleteMessage"
	FnClearUserMessages = "messages:clearUserMessages"

	FnListCollections              = "collections:listCollections"
	FnGetCollection                = "collections:getCollection"
	FnGetUserCollections           = "collections:getUserCollections"
	FnCreateCollection             = "collections:createCollection"
	FnUpdateCollection             = "collections:updateCollection"
	FnDeleteCollection             = "collections:deleteCollection"
	FnAddPropertyToCollection      = "collections:addPropertyToCollection"
	FnRemovePropertyFromCollection = "collections:removePropertyFromCollection"
	FnGetCollectionsWithProperty   = "collections:getCollectionsWithProperty"

	FnGetUserStats         = "analytics:getUserStats"
	FnGetPlatformStats     = "analytics:getPlatformStats"
	FnGetUserActivity      = "analytics:getUserActivity"
	FnGetPropertyAnalytics = "analytics:getPropertyAnalytics"
)

// Argument shapes. Update arguments flatten the patch next to the id.
// Lookup arguments carry no binding rules: an empty id or email is an
// absent entity and a non-positive limit selects DefaultRecentLimit, as on
// every local backend. Create arguments are the entity types, whose binding
// tags mirror their Validate rules.

type NoArgs struct{}

type IDArgs struct {
	ID string `json:"id"`
}

type UserIDArgs struct {
	UserID string `json:"userId"`
}

type PropertyIDArgs struct {
	PropertyID string `json:"propertyId"`
}

type QueryArgs struct {
	Query string `json:"query"`
}

type EmailArgs struct {
	Email string `json:"email"`
}

type RoleArgs struct {
	Role types.Role `json:"role"`
}

type RecentArgs struct {
	UserID string `json:"userId"`
	Limit  int    `json:"limit,omitempty"`
}

type MembershipArgs struct {
	CollectionID string `json:"collectionId"`
	PropertyID   string `json:"propertyId"`
}

type UpdatePropertyArgs struct {
	ID string `json:"id"`
	types.PropertyPatch
}

type UpdateUserArgs struct {
	ID string `json:"id"`
	types.UserPatch
}

type UpdateMessageArgs struct {
	ID string `json:"id"`
	types.MessagePatch
}

type UpdateCollectionArgs struct {
	ID string `json:"id"`
	types.CollectionPatch
}
