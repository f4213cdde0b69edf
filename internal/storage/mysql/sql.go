package mysql

const deleteStaticSQL = `DELETE FROM static_routes WHERE locale = ?`

const insertStaticSQL = `
INSERT INTO static_routes (locale, path, position)
VALUES (?, ?, ?)
`

const upsertCitySQL = `
INSERT INTO cities
  (locale, slug, name, region, position)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name     = VALUES(name),
  region   = VALUES(region),
  position = VALUES(position)
`

const upsertArticleSQL = `
INSERT INTO articles
  (locale, slug, title, published_at, position)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title        = VALUES(title),
  published_at = VALUES(published_at),
  position     = VALUES(position)
`

// Prune statements; the slug list is appended as "AND slug NOT IN (?, ...)".
const deleteCitiesSQL = `DELETE FROM cities WHERE locale = ?`

const deleteArticlesSQL = `DELETE FROM articles WHERE locale = ?`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Rows come back grouped by locale and in authoring order within each locale.

const listStaticSQL = `
SELECT locale, path
FROM static_routes
ORDER BY locale, position, path
`

const listCitiesSQL = `
SELECT locale, slug, name, COALESCE(region, '')
FROM cities
ORDER BY locale, position, slug
`

const listArticlesSQL = `
SELECT locale, slug, title, published_at
FROM articles
ORDER BY locale, position, slug
`
