package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcon/internal/models"
)

const orgID = "0000000000000001"

func testBuckets(names ...string) []models.Bucket {
	buckets := make([]models.Bucket, 0, len(names))
	for i, name := range names {
		buckets = append(buckets, models.Bucket{
			ID:    string(rune('a'+i)) + "00000000000000b",
			OrgID: orgID,
			Name:  name,
		})
	}
	return buckets
}

func TestBucketPermissions_SubsetYieldsSpecificPermissions(t *testing.T) {
	buckets := testBuckets("a", "b", "c")

	perms := BucketPermissions(orgID, buckets, NewSelection("a", "c"), models.ActionRead)

	require.Len(t, perms, 2)
	assert.ElementsMatch(t, []models.Permission{
		{Action: models.ActionRead, Resource: models.Resource{Type: models.ResourceTypeBuckets, OrgID: orgID, ID: buckets[0].ID, Name: "a"}},
		{Action: models.ActionRead, Resource: models.Resource{Type: models.ResourceTypeBuckets, OrgID: orgID, ID: buckets[2].ID, Name: "c"}},
	}, perms)
}

func TestBucketPermissions_FullSelectionCollapsesToWildcard(t *testing.T) {
	buckets := testBuckets("a", "b")

	perms := BucketPermissions(orgID, buckets, NewSelection("b", "a"), models.ActionWrite)

	require.Len(t, perms, 1)
	assert.Equal(t, models.ActionWrite, perms[0].Action)
	assert.True(t, perms[0].Resource.IsWildcard())
	assert.Equal(t, orgID, perms[0].Resource.OrgID)
	assert.Equal(t, models.ResourceTypeBuckets, perms[0].Resource.Type)
}

func TestBucketPermissions_EmptySelection(t *testing.T) {
	perms := BucketPermissions(orgID, testBuckets("a", "b"), NewSelection(), models.ActionRead)
	assert.Empty(t, perms)
}

func TestBucketPermissions_NoBucketsAndNoSelectionIsWildcard(t *testing.T) {
	perms := BucketPermissions(orgID, nil, NewSelection(), models.ActionRead)

	require.Len(t, perms, 1)
	assert.True(t, perms[0].Resource.IsWildcard())
	assert.Equal(t, models.ActionRead, perms[0].Action)
}

func TestBucketPermissions_UnknownNamesAreDropped(t *testing.T) {
	buckets := testBuckets("a", "b", "c")

	perms := BucketPermissions(orgID, buckets, NewSelection("a", "nope"), models.ActionRead)

	require.Len(t, perms, 1)
	assert.Equal(t, buckets[0].ID, perms[0].Resource.ID)
}

func TestBucketPermissions_CountMatchesIntersection(t *testing.T) {
	buckets := testBuckets("a", "b", "c", "d", "e")

	cases := []Selection{
		NewSelection(),
		NewSelection("a"),
		NewSelection("a", "e"),
		NewSelection("b", "c", "d"),
		NewSelection("a", "b", "c", "d"),
		NewSelection("x", "y"),
	}

	for _, sel := range cases {
		perms := BucketPermissions(orgID, buckets, sel, models.ActionWrite)
		want := sel.Len() - len(UnknownBuckets(buckets, sel))
		assert.Len(t, perms, want, "selection %v", sel.Names())
		for _, p := range perms {
			assert.False(t, p.Resource.IsWildcard())
			assert.Equal(t, models.ActionWrite, p.Action)
		}
	}
}

func TestSpecificBucketsPermissions_UsesBucketOrg(t *testing.T) {
	buckets := []models.Bucket{{ID: "b1", OrgID: "other", Name: "x"}}

	perms := SpecificBucketsPermissions(buckets, models.ActionRead)

	require.Len(t, perms, 1)
	assert.Equal(t, "other", perms[0].Resource.OrgID)
	assert.Equal(t, "b1", perms[0].Resource.ID)
}

func TestUnknownBuckets(t *testing.T) {
	buckets := testBuckets("a", "b")

	assert.Nil(t, UnknownBuckets(buckets, NewSelection("a", "b")))
	assert.Equal(t, []string{"c", "d"}, UnknownBuckets(buckets, NewSelection("c", "a", "d")))
}

func TestNewBucketsAuthorization(t *testing.T) {
	buckets := testBuckets("a", "b", "c")

	auth := NewBucketsAuthorization(orgID, "telegraf", buckets,
		NewSelection("a", "b", "c"),
		NewSelection("b"),
	)

	assert.Equal(t, orgID, auth.OrgID)
	assert.Equal(t, "telegraf", auth.Description)
	require.Len(t, auth.Permissions, 2)

	write, read := auth.Permissions[0], auth.Permissions[1]
	assert.Equal(t, models.ActionWrite, write.Action)
	assert.Equal(t, buckets[1].ID, write.Resource.ID)
	assert.Equal(t, models.ActionRead, read.Action)
	assert.True(t, read.Resource.IsWildcard())
}

func TestNewBucketsAuthorization_NothingSelected(t *testing.T) {
	auth := NewBucketsAuthorization(orgID, "", testBuckets("a"), NewSelection(), NewSelection())
	assert.Empty(t, auth.Permissions)
}
