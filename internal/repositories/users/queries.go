package users

const getUserByEmailQuery = `
	SELECT id, email, password_hash, created_at
	FROM app_user
	WHERE LOWER(email) = LOWER($1)
`

const getUserByIDQuery = `
	SELECT id, email, password_hash, created_at
	FROM app_user
	WHERE id = $1
`

const upsertUserQuery = `
	INSERT INTO app_user (id, email, password_hash)
	VALUES ($1, $2, $3)
	ON CONFLICT (LOWER(email)) DO UPDATE SET password_hash = EXCLUDED.password_hash
	RETURNING id
`
