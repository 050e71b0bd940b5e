package submissions

const listSubmissionsQuery = `
	SELECT
		id,
		title,
		COALESCE(performer, ''),
		video_url,
		video_id,
		COALESCE(image_url, ''),
		COALESCE(notes, ''),
		created_at
	FROM submission
	ORDER BY created_at DESC, seq ASC
`

const getSubmissionQuery = `
	SELECT
		id,
		title,
		COALESCE(performer, ''),
		video_url,
		video_id,
		COALESCE(image_url, ''),
		COALESCE(notes, ''),
		created_at
	FROM submission
	WHERE id = $1
`

const insertSubmissionQuery = `
	INSERT INTO submission (
		id,
		title,
		performer,
		video_url,
		video_id,
		image_url,
		notes
	)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), NULLIF($7, ''))
`

const deleteSubmissionQuery = "DELETE FROM submission WHERE id = $1"
