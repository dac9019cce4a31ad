package feed

import (
	"testing"
	"time"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <language>en-us</language>
    <item>
      <title>Test Item 1</title>
      <link>https://example.com/item1</link>
      <description>Test Item 1 Description</description>
      <guid>item-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <category>Technology</category>
      <category>Programming</category>
    </item>
    <item>
      <title>Test Item 2</title>
      <link>https://example.com/item2</link>
      <description>Test Item 2 Description</description>
      <pubDate>Mon, 03 Jul 2023 11:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	meta, entries, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if meta.Title != "Test Feed" {
		t.Errorf("Expected title 'Test Feed', got: %s", meta.Title)
	}
	if meta.Language != "en-us" {
		t.Errorf("Expected language 'en-us', got: %s", meta.Language)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}

	entry1 := entries[0]
	if entry1.Title != "Test Item 1" {
		t.Errorf("Expected title 'Test Item 1', got: %s", entry1.Title)
	}
	if entry1.URL != "https://example.com/item1" {
		t.Errorf("Expected URL 'https://example.com/item1', got: %s", entry1.URL)
	}
	if entry1.GUID != "item-1" {
		t.Errorf("Expected GUID 'item-1', got: %s", entry1.GUID)
	}
	if len(entry1.Categories) != 2 {
		t.Errorf("Expected 2 categories, got: %d", len(entry1.Categories))
	}

	expected := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	if !entry1.PublishedAt.Equal(expected) {
		t.Errorf("Expected publish time %v, got: %v", expected, entry1.PublishedAt)
	}
	if entry1.PublishedAt.Location() != time.UTC {
		t.Errorf("Expected UTC timestamp, got location: %v", entry1.PublishedAt.Location())
	}

	// GUID falls back to the link when absent
	if entries[1].GUID != "https://example.com/item2" {
		t.Errorf("Expected GUID fallback to link, got: %s", entries[1].GUID)
	}
}

func TestParseDropsItemsWithoutTimestamp(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <item>
      <title>Dated Item</title>
      <link>https://example.com/dated</link>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Undated Item</title>
      <link>https://example.com/undated</link>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	_, entries, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected undated item to be dropped, got %d entries", len(entries))
	}
	if entries[0].Title != "Dated Item" {
		t.Errorf("Expected 'Dated Item' to survive, got: %s", entries[0].Title)
	}
}

func TestParseUpdatedFallback(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <id>urn:uuid:feed</id>
  <entry>
    <title>Updated Only</title>
    <link href="https://example.com/entry1"/>
    <id>urn:uuid:entry-1</id>
    <updated>2023-07-03T10:00:00Z</updated>
  </entry>
</feed>`

	parser := NewParser()
	_, entries, err := parser.Run([]byte(atomData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got: %d", len(entries))
	}

	expected := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	if !entries[0].PublishedAt.Equal(expected) {
		t.Errorf("Expected updated time used as publish time, got: %v", entries[0].PublishedAt)
	}
}

func TestParseYouTubeFeed(t *testing.T) {
	ytData := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <title>Test Channel</title>
  <link rel="alternate" href="https://www.youtube.com/channel/UCtestchannel"/>
  <id>yt:channel:testchannel</id>
  <entry>
    <id>yt:video:dQw4w9WgXcQ</id>
    <yt:videoId>dQw4w9WgXcQ</yt:videoId>
    <yt:channelId>UCtestchannel</yt:channelId>
    <title>Test Video</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=dQw4w9WgXcQ"/>
    <published>2023-07-03T10:00:00+00:00</published>
    <updated>2023-07-03T11:00:00+00:00</updated>
    <media:group>
      <media:title>Test Video</media:title>
      <media:description>A video about testing.</media:description>
    </media:group>
  </entry>
</feed>`

	parser := NewParser()
	_, entries, err := parser.Run([]byte(ytData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got: %d", len(entries))
	}

	entry := entries[0]
	if entry.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("Expected video ID 'dQw4w9WgXcQ', got: %s", entry.VideoID)
	}
	if entry.Description != "A video about testing." {
		t.Errorf("Expected media description, got: %s", entry.Description)
	}
	if entry.Key() != "dQw4w9WgXcQ" {
		t.Errorf("Expected identity key to be the video ID, got: %s", entry.Key())
	}
}

func TestParseInvalidData(t *testing.T) {
	parser := NewParser()

	_, _, err := parser.Run([]byte("not a feed at all"))
	if err == nil {
		t.Error("Expected error for invalid feed data")
	}
}
