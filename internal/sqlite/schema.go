package sqlite

// Schema DDL. Every table carries an autoincrement seq column so lists come
// back in insertion order.
const (
	createProperties = `CREATE TABLE IF NOT EXISTS properties (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    price TEXT NOT NULL,
    location TEXT NOT NULL,
    bedrooms INTEGER NOT NULL,
    bathrooms REAL NOT NULL,
    area TEXT NOT NULL,
    image TEXT NOT NULL,
    description TEXT NOT NULL,
    type TEXT NOT NULL,
    featured INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    avatar TEXT,
    created_at INTEGER NOT NULL
);`

	createMessages = `CREATE TABLE IF NOT EXISTS messages (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL,
    content TEXT NOT NULL,
    is_ai INTEGER NOT NULL,
    timestamp INTEGER NOT NULL
);`

	createCollections = `CREATE TABLE IF NOT EXISTS collections (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    property_ids TEXT NOT NULL,
    created_at INTEGER NOT NULL
);`
)

// Index DDL for the per-user reads.
const (
	idxMessagesUser    = `CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user_id, timestamp);`
	idxCollectionsUser = `CREATE INDEX IF NOT EXISTS idx_collections_user ON collections(user_id);`
	idxUsersRole       = `CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);`
)

// schemaDDL lists all statements run on attach, tables first.
var schemaDDL = []string{
	createProperties,
	createUsers,
	createMessages,
	createCollections,
	idxMessagesUser,
	idxCollectionsUser,
	idxUsersRole,
}
