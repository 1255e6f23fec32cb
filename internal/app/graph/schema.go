// internal/app/graph/schema.go
package graph

// SchemaString is the service's GraphQL SDL. Member and Role field names are
// wire contract with the frontend and the sibling services; do not rename.
const SchemaString = `
schema {
	query: Query
	mutation: Mutation
}

type Query {
	members(cid: String!): [Member!]!
	member(cid: String!, uid: String!): Member!
	memberRoles(uid: String!): [Member!]!
	currentMembers(cid: String!): [Member!]!
	pendingMembers: [Member!]!

	activeClubs: [Club!]!
	allClubs: [Club!]!
	club(cid: String!): Club!
}

type Mutation {
	createMember(cid: String!, uid: String!, roles: [RoleInput!]!): Member!
	editMember(cid: String!, uid: String!, roles: [RoleInput!]!, poc: Boolean): Member!
	deleteMember(cid: String!, uid: String!, rid: String!): Member!
	approveMember(cid: String!, uid: String!, rid: String!): Member!

	createClub(clubInput: ClubInput!): Club!
	editClub(clubInput: ClubInput!): Club!
	deleteClub(cid: String!): Club!
	restartClub(cid: String!): Club!

	updateMembersCid(oldCid: String!, newCid: String!, interCommunicationSecret: String): Int!
}

type Member {
	cid: String!
	uid: String!
	poc: Boolean!
	roles: [Role!]!
}

type Role {
	rid: String
	name: String!
	startYear: Int!
	endYear: Int
	approved: Boolean!
	rejected: Boolean!
	deleted: Boolean!
}

type Club {
	cid: String!
	code: String!
	state: String!
	category: String!
	studentBody: Boolean!
	name: String!
	email: String!
	logo: String
	banner: String
	bannerSquare: String
	tagline: String
	description: String!
	socials: Socials!
}

type Socials {
	website: String
	instagram: String
	facebook: String
	youtube: String
	twitter: String
	linkedin: String
	discord: String
	whatsapp: String
	otherLinks: [String!]!
}

input RoleInput {
	name: String!
	startYear: Int!
	endYear: Int
}

input SocialsInput {
	website: String
	instagram: String
	facebook: String
	youtube: String
	twitter: String
	linkedin: String
	discord: String
	whatsapp: String
	otherLinks: [String!]
}

input ClubInput {
	cid: String
	code: String!
	name: String!
	email: String!
	category: String
	studentBody: Boolean
	logo: String
	banner: String
	bannerSquare: String
	tagline: String
	description: String
	socials: SocialsInput
}
`
